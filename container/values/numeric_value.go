/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package values

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/kcenon/messaging-system/container/core"
)

// CharValue represents a single byte interpreted as a character.
type CharValue struct {
	*core.BaseValue
	value byte
}

// NewCharValue creates a new char value.
func NewCharValue(name string, value byte) *CharValue {
	return &CharValue{
		BaseValue: core.NewBaseValueWithRaw(name, core.CharValue, []byte{value}, string(rune(value))),
		value:     value,
	}
}

func (v *CharValue) ToInt32() (int32, error)   { return int32(v.value), nil }
func (v *CharValue) ToInt64() (int64, error)   { return int64(v.value), nil }
func (v *CharValue) ToString() (string, error) { return string(rune(v.value)), nil }
func (v *CharValue) Value() byte               { return v.value }
func (v *CharValue) Serialize() (string, error) {
	return fmt.Sprintf("[%s,%s,%s];", v.Name(), core.CharValue.String(), core.EscapeRaw(string(rune(v.value)))), nil
}

// Int8Value represents an 8-bit signed integer.
type Int8Value struct {
	*core.BaseValue
	value int8
}

// NewInt8Value creates a new int8 value.
func NewInt8Value(name string, value int8) *Int8Value {
	raw := strconv.FormatInt(int64(value), 10)
	return &Int8Value{
		BaseValue: core.NewBaseValueWithRaw(name, core.Int8Value, []byte{byte(value)}, raw),
		value:     value,
	}
}

func (v *Int8Value) ToInt32() (int32, error) { return int32(v.value), nil }
func (v *Int8Value) ToInt64() (int64, error) { return int64(v.value), nil }
func (v *Int8Value) Value() int8             { return v.value }
func (v *Int8Value) Serialize() (string, error) {
	return fmt.Sprintf("[%s,%s,%d];", v.Name(), core.Int8Value.String(), v.value), nil
}

// UInt8Value represents an 8-bit unsigned integer.
type UInt8Value struct {
	*core.BaseValue
	value uint8
}

// NewUInt8Value creates a new uint8 value.
func NewUInt8Value(name string, value uint8) *UInt8Value {
	raw := strconv.FormatUint(uint64(value), 10)
	return &UInt8Value{
		BaseValue: core.NewBaseValueWithRaw(name, core.UInt8Value, []byte{value}, raw),
		value:     value,
	}
}

func (v *UInt8Value) ToUInt32() (uint32, error) { return uint32(v.value), nil }
func (v *UInt8Value) ToUInt64() (uint64, error) { return uint64(v.value), nil }
func (v *UInt8Value) Value() uint8              { return v.value }
func (v *UInt8Value) Serialize() (string, error) {
	return fmt.Sprintf("[%s,%s,%d];", v.Name(), core.UInt8Value.String(), v.value), nil
}

// Int16Value represents a 16-bit signed integer
type Int16Value struct {
	*core.BaseValue
	value int16
}

// NewInt16Value creates a new int16 value
func NewInt16Value(name string, value int16) *Int16Value {
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, uint16(value))
	raw := strconv.FormatInt(int64(value), 10)
	return &Int16Value{
		BaseValue: core.NewBaseValueWithRaw(name, core.Int16Value, data, raw),
		value:     value,
	}
}

func (v *Int16Value) ToInt16() (int16, error) { return v.value, nil }
func (v *Int16Value) ToInt32() (int32, error) { return int32(v.value), nil }
func (v *Int16Value) ToInt64() (int64, error) { return int64(v.value), nil }
func (v *Int16Value) Value() int16            { return v.value }
func (v *Int16Value) Serialize() (string, error) {
	return fmt.Sprintf("[%s,%s,%d];", v.Name(), core.Int16Value.String(), v.value), nil
}

// UInt16Value represents a 16-bit unsigned integer
type UInt16Value struct {
	*core.BaseValue
	value uint16
}

// NewUInt16Value creates a new uint16 value
func NewUInt16Value(name string, value uint16) *UInt16Value {
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, value)
	raw := strconv.FormatUint(uint64(value), 10)
	return &UInt16Value{
		BaseValue: core.NewBaseValueWithRaw(name, core.UInt16Value, data, raw),
		value:     value,
	}
}

func (v *UInt16Value) ToUInt16() (uint16, error) { return v.value, nil }
func (v *UInt16Value) ToUInt32() (uint32, error) { return uint32(v.value), nil }
func (v *UInt16Value) ToUInt64() (uint64, error) { return uint64(v.value), nil }
func (v *UInt16Value) Value() uint16             { return v.value }
func (v *UInt16Value) Serialize() (string, error) {
	return fmt.Sprintf("[%s,%s,%d];", v.Name(), core.UInt16Value.String(), v.value), nil
}

// Int32Value represents a 32-bit signed integer
type Int32Value struct {
	*core.BaseValue
	value int32
}

// NewInt32Value creates a new int32 value
func NewInt32Value(name string, value int32) *Int32Value {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, uint32(value))
	raw := strconv.FormatInt(int64(value), 10)
	return &Int32Value{
		BaseValue: core.NewBaseValueWithRaw(name, core.Int32Value, data, raw),
		value:     value,
	}
}

func (v *Int32Value) ToInt32() (int32, error) { return v.value, nil }
func (v *Int32Value) ToInt64() (int64, error) { return int64(v.value), nil }
func (v *Int32Value) Value() int32            { return v.value }
func (v *Int32Value) Serialize() (string, error) {
	return fmt.Sprintf("[%s,%s,%d];", v.Name(), core.Int32Value.String(), v.value), nil
}

// UInt32Value represents a 32-bit unsigned integer
type UInt32Value struct {
	*core.BaseValue
	value uint32
}

// NewUInt32Value creates a new uint32 value
func NewUInt32Value(name string, value uint32) *UInt32Value {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, value)
	raw := strconv.FormatUint(uint64(value), 10)
	return &UInt32Value{
		BaseValue: core.NewBaseValueWithRaw(name, core.UInt32Value, data, raw),
		value:     value,
	}
}

func (v *UInt32Value) ToUInt32() (uint32, error) { return v.value, nil }
func (v *UInt32Value) ToUInt64() (uint64, error) { return uint64(v.value), nil }
func (v *UInt32Value) Value() uint32             { return v.value }
func (v *UInt32Value) Serialize() (string, error) {
	return fmt.Sprintf("[%s,%s,%d];", v.Name(), core.UInt32Value.String(), v.value), nil
}

// Int64Value represents a 64-bit signed integer
type Int64Value struct {
	*core.BaseValue
	value int64
}

// NewInt64Value creates a new int64 value
func NewInt64Value(name string, value int64) *Int64Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, uint64(value))
	raw := strconv.FormatInt(value, 10)
	return &Int64Value{
		BaseValue: core.NewBaseValueWithRaw(name, core.Int64Value, data, raw),
		value:     value,
	}
}

func (v *Int64Value) ToInt64() (int64, error) { return v.value, nil }
func (v *Int64Value) Value() int64            { return v.value }
func (v *Int64Value) Serialize() (string, error) {
	return fmt.Sprintf("[%s,%s,%d];", v.Name(), core.Int64Value.String(), v.value), nil
}

// UInt64Value represents a 64-bit unsigned integer
type UInt64Value struct {
	*core.BaseValue
	value uint64
}

// NewUInt64Value creates a new uint64 value
func NewUInt64Value(name string, value uint64) *UInt64Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, value)
	raw := strconv.FormatUint(value, 10)
	return &UInt64Value{
		BaseValue: core.NewBaseValueWithRaw(name, core.UInt64Value, data, raw),
		value:     value,
	}
}

func (v *UInt64Value) ToUInt64() (uint64, error) { return v.value, nil }
func (v *UInt64Value) Value() uint64             { return v.value }
func (v *UInt64Value) Serialize() (string, error) {
	return fmt.Sprintf("[%s,%s,%d];", v.Name(), core.UInt64Value.String(), v.value), nil
}

// Float32Value represents a 32-bit floating point
type Float32Value struct {
	*core.BaseValue
	value float32
}

// NewFloat32Value creates a new float32 value
func NewFloat32Value(name string, value float32) *Float32Value {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, math.Float32bits(value))
	raw := strconv.FormatFloat(float64(value), 'g', -1, 32)
	return &Float32Value{
		BaseValue: core.NewBaseValueWithRaw(name, core.FloatValue, data, raw),
		value:     value,
	}
}

func (v *Float32Value) ToFloat32() (float32, error) { return v.value, nil }
func (v *Float32Value) ToFloat64() (float64, error) { return float64(v.value), nil }
func (v *Float32Value) Value() float32              { return v.value }
func (v *Float32Value) Serialize() (string, error) {
	raw := strconv.FormatFloat(float64(v.value), 'g', -1, 32)
	return fmt.Sprintf("[%s,%s,%s];", v.Name(), core.FloatValue.String(), core.EscapeRaw(raw)), nil
}

// Float64Value represents a 64-bit floating point
type Float64Value struct {
	*core.BaseValue
	value float64
}

// NewFloat64Value creates a new float64 value
func NewFloat64Value(name string, value float64) *Float64Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, math.Float64bits(value))
	raw := strconv.FormatFloat(value, 'g', -1, 64)
	return &Float64Value{
		BaseValue: core.NewBaseValueWithRaw(name, core.DoubleValue, data, raw),
		value:     value,
	}
}

func (v *Float64Value) ToFloat64() (float64, error) { return v.value, nil }
func (v *Float64Value) Value() float64              { return v.value }
func (v *Float64Value) Serialize() (string, error) {
	raw := strconv.FormatFloat(v.value, 'g', -1, 64)
	return fmt.Sprintf("[%s,%s,%s];", v.Name(), core.DoubleValue.String(), core.EscapeRaw(raw)), nil
}
