/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package values

import (
	"fmt"

	"github.com/kcenon/messaging-system/container/core"
)

// ArrayValue is an ergonomic, ordered view over a ContainerValue: it carries
// no wire kind of its own (ArrayValue.Type() reports core.ContainerValue, the
// same as any other container), but offers index-based accessors more
// natural for homogeneous collections than Children()/GetChild() are.
type ArrayValue struct {
	*ContainerValue
}

// NewArrayValue creates a new array-shaped container value.
func NewArrayValue(name string, elements ...core.Value) *ArrayValue {
	av := &ArrayValue{ContainerValue: NewContainerValue(name)}
	for _, element := range elements {
		av.Append(element)
	}
	return av
}

// Elements returns all elements, in insertion order.
func (v *ArrayValue) Elements() []core.Value {
	return v.Children()
}

// Count returns the number of elements.
func (v *ArrayValue) Count() int {
	return v.ChildCount()
}

// IsEmpty checks if the array is empty.
func (v *ArrayValue) IsEmpty() bool {
	return v.ChildCount() == 0
}

// At gets the element at index.
func (v *ArrayValue) At(index int) (core.Value, error) {
	children := v.Children()
	if index < 0 || index >= len(children) {
		return nil, fmt.Errorf("array index %d out of range (size: %d)", index, len(children))
	}
	return children[index], nil
}

// Append adds an element to the end of the array.
func (v *ArrayValue) Append(element core.Value) error {
	return v.AddChild(element)
}

// Push adds an element to the end of the array.
func (v *ArrayValue) Push(element core.Value) error {
	return v.Append(element)
}

// PushBack adds an element to the end of the array.
func (v *ArrayValue) PushBack(element core.Value) error {
	return v.Append(element)
}

// Clear removes all elements.
func (v *ArrayValue) Clear() {
	for _, child := range v.Children() {
		v.RemoveChild(child.Name())
	}
}
