/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package values

import (
	"testing"

	"github.com/kcenon/messaging-system/container/core"
)

func TestAddChildSetsParentBackReference(t *testing.T) {
	parent := NewContainerValue("parent")
	child := NewStringValue("child", "payload")

	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if child.Parent() == nil {
		t.Fatal("child.Parent() is nil after AddChild")
	}
	found := false
	for _, c := range child.Parent().Children() {
		if c == core.Value(child) {
			found = true
		}
	}
	if !found {
		t.Fatal("parent's Children() does not contain the child")
	}
}

func TestRemoveChildClearsParent(t *testing.T) {
	parent := NewContainerValue("parent")
	child := NewInt32Value("gone", 1)
	kept := NewInt32Value("kept", 2)
	parent.AddChild(child)
	parent.AddChild(kept)

	if err := parent.RemoveChild("gone"); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}

	if child.Parent() != nil {
		t.Error("removed child still has a parent")
	}
	if parent.ChildCount() != 1 {
		t.Errorf("child count = %d, want 1", parent.ChildCount())
	}
	if kept.Parent() == nil {
		t.Error("surviving child lost its parent")
	}
}

func TestGetReturnsAllMatchesInOrder(t *testing.T) {
	parent := NewContainerValue("parent")
	parent.AddChild(NewInt32Value("item", 1))
	parent.AddChild(NewInt32Value("other", 2))
	parent.AddChild(NewInt32Value("item", 3))

	matches := parent.Get("item")
	if len(matches) != 2 {
		t.Fatalf("Get returned %d matches, want 2", len(matches))
	}
	first, _ := matches[0].ToInt32()
	second, _ := matches[1].ToInt32()
	if first != 1 || second != 3 {
		t.Errorf("matches out of order: %d, %d", first, second)
	}

	if got := parent.Get("missing"); len(got) != 0 {
		t.Errorf("Get(missing) returned %d matches", len(got))
	}
}

// A container's raw payload is its child count at the time it is read, so
// it can never go stale the way a cached count would after mutation.
func TestContainerRawTracksChildCount(t *testing.T) {
	cv := NewContainerValue("c")
	if cv.Raw() != "0" {
		t.Fatalf("empty container raw = %q", cv.Raw())
	}
	cv.AddChild(NewStringValue("a", "x"))
	cv.AddChild(NewStringValue("b", "y"))
	if cv.Raw() != "2" {
		t.Fatalf("raw = %q after two adds", cv.Raw())
	}
	cv.RemoveChild("a")
	if cv.Raw() != "1" {
		t.Fatalf("raw = %q after removal", cv.Raw())
	}
}
