// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package doc

import (
	"errors"
	"fmt"
	"slices"
)

// SkipAll may be returned by a [Visitor] to stop a walk early. [Walk] then
// returns nil.
var SkipAll = errors.New("doc: skip all")

// Visitor is called by [Walk] for every node.
//
// Returning false prunes the subtree rooted at the visited node; the walk
// still continues with its siblings and with the rest of its ancestors.
// Returning an error aborts the walk.
type Visitor func(c Cursor) (descend bool, err error)

// Cursor describes a node reached during a [Walk].
type Cursor struct {
	Node Doc

	// The index at which Node sits in its parent's multi-child slot, or
	// [NoIndex] if it is in a single-child slot or is the root.
	Index int

	// Every ancestor of Node, outermost first. Each ancestor is paired with
	// the index at which it was reached in its own parent.
	//
	// The slice is only valid for the duration of the visit; use [Cursor.Clone]
	// to keep it.
	Ancestors []Ancestor
}

// Ancestor is an entry in [Cursor.Ancestors].
type Ancestor struct {
	Node  Doc
	Index int
}

// Parent returns the immediate parent of the visited node, or nil at the
// root.
func (c Cursor) Parent() Doc {
	if len(c.Ancestors) == 0 {
		return nil
	}
	return c.Ancestors[len(c.Ancestors)-1].Node
}

// Depth returns the number of ancestors of the visited node.
func (c Cursor) Depth() int {
	return len(c.Ancestors)
}

// Clone returns a copy of c whose ancestor chain is safe to retain.
func (c Cursor) Clone() Cursor {
	c.Ancestors = slices.Clone(c.Ancestors)
	return c
}

// Walk performs a depth-first, pre-order traversal of root.
//
// Children are read from their slots as the walk reaches them, so a visitor
// may replace a later sibling of the node it is visiting, and the walk will
// visit the replacement.
func Walk(root Doc, visit Visitor) error {
	w := walker{visit: visit}
	err := w.walk(root, NoIndex)
	if errors.Is(err, SkipAll) {
		return nil
	}
	return err
}

type walker struct {
	visit     Visitor
	ancestors []Ancestor
}

func (w *walker) walk(node Doc, index int) error {
	if node == nil {
		return nil
	}

	descend, err := w.visit(Cursor{Node: node, Index: index, Ancestors: w.ancestors})
	if err != nil || !descend {
		return err
	}

	w.ancestors = append(w.ancestors, Ancestor{Node: node, Index: index})
	defer func() { w.ancestors = w.ancestors[:len(w.ancestors)-1] }()

	switch node := node.(type) {
	case *Text, *Line, *BreakParent:
		return nil

	case *Concat:
		for i := 0; i < len(node.Parts); i++ {
			if err := w.walk(node.Parts[i], i); err != nil {
				return err
			}
		}
		return nil

	case *Indent:
		return w.walk(node.Contents, NoIndex)
	case *Align:
		return w.walk(node.Contents, NoIndex)
	case *Group:
		return w.walk(node.Contents, NoIndex)
	case *LineSuffix:
		return w.walk(node.Contents, NoIndex)

	case *IfBreak:
		if err := w.walk(node.Break, 0); err != nil {
			return err
		}
		return w.walk(node.Flat, 1)

	default:
		panic(fmt.Sprintf("doc: unknown node type %T", node))
	}
}

// Child returns the child of parent at the given slot. index must be
// [NoIndex] for single-child nodes.
//
// Panics if parent has no such slot.
func Child(parent Doc, index int) Doc {
	switch parent := parent.(type) {
	case *Concat:
		return parent.Parts[index]
	case *IfBreak:
		switch index {
		case 0:
			return parent.Break
		case 1:
			return parent.Flat
		}
	case *Indent:
		if index == NoIndex {
			return parent.Contents
		}
	case *Align:
		if index == NoIndex {
			return parent.Contents
		}
	case *Group:
		if index == NoIndex {
			return parent.Contents
		}
	case *LineSuffix:
		if index == NoIndex {
			return parent.Contents
		}
	}
	panic(fmt.Sprintf("doc: %v has no child slot %d", kindOf(parent), index))
}

// SetChild replaces the child of parent at the given slot with child, and
// returns the child that was there before.
//
// Panics if parent has no such slot.
func SetChild(parent Doc, index int, child Doc) (old Doc) {
	switch parent := parent.(type) {
	case *Concat:
		old, parent.Parts[index] = parent.Parts[index], child
		return old
	case *IfBreak:
		switch index {
		case 0:
			old, parent.Break = parent.Break, child
			return old
		case 1:
			old, parent.Flat = parent.Flat, child
			return old
		}
	case *Indent:
		if index == NoIndex {
			old, parent.Contents = parent.Contents, child
			return old
		}
	case *Align:
		if index == NoIndex {
			old, parent.Contents = parent.Contents, child
			return old
		}
	case *Group:
		if index == NoIndex {
			old, parent.Contents = parent.Contents, child
			return old
		}
	case *LineSuffix:
		if index == NoIndex {
			old, parent.Contents = parent.Contents, child
			return old
		}
	}
	panic(fmt.Sprintf("doc: %v has no child slot %d", kindOf(parent), index))
}

// Insert inserts d into c at index i, shifting later parts right.
func (c *Concat) Insert(i int, d Doc) {
	c.Parts = slices.Insert(c.Parts, i, d)
}

// Remove removes the part of c at index i and returns it.
func (c *Concat) Remove(i int) Doc {
	d := c.Parts[i]
	c.Parts = slices.Delete(c.Parts, i, i+1)
	return d
}

func kindOf(d Doc) Kind {
	if d == nil {
		return kindNone
	}
	return d.Kind()
}
