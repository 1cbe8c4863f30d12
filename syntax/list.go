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

package syntax

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/source"
)

const (
	Array Kind = 1 + iota
	Arguments
)

// Kind is the kind of a [List].
type Kind int

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Array:
		return "array"
	case Arguments:
		return "argument-list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Delimiters returns the opening and closing delimiters for lists of this
// kind.
func (k Kind) Delimiters() (open, close string) {
	if k == Arguments {
		return "(", ")"
	}
	return "[", "]"
}

// List is the logical view of a list-like construct: an array literal or
// pattern, or an argument or parameter list.
//
// Lists are derived from the syntax tree whenever they are needed and are
// never stored.
type List struct {
	Kind Kind
	Node *sitter.Node

	// The extent of the whole list, delimiters included.
	Range source.Range

	// The extent of each element, in order. Comments are not elements.
	Elements []source.Range
}

// Len returns the number of elements in the list.
func (l List) Len() int {
	return len(l.Elements)
}

// Line returns the 1-indexed line the list starts on.
func (l List) Line() int {
	return l.Range.Start.Line + 1
}

// ListOf returns the list described by n, if n is list-like.
//
// Argument and parameter lists only count if arguments is set.
func ListOf(n *sitter.Node, arguments bool) (List, bool) {
	var kind Kind
	switch n.Type() {
	case "array", "array_pattern":
		kind = Array
	case "arguments", "formal_parameters":
		if !arguments {
			return List{}, false
		}
		kind = Arguments
	default:
		return List{}, false
	}

	list := List{Kind: kind, Node: n, Range: RangeOf(n)}
	for _, element := range Elements(n) {
		list.Elements = append(list.Elements, RangeOf(element))
	}
	return list, true
}

// Elements returns the element nodes of a list node: its named children,
// except for comments.
func Elements(n *sitter.Node) []*sitter.Node {
	var elements []*sitter.Node
	for i := range int(n.NamedChildCount()) {
		child := n.NamedChild(i)
		if child == nil || IsComment(child) {
			continue
		}
		elements = append(elements, child)
	}
	return elements
}
