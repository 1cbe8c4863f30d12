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

package printer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

// item is one list element with the comments attached to it.
type item struct {
	node *sitter.Node

	// Comments before the element, since the previous element's trailing
	// comments.
	leading []*sitter.Node

	// Comments after the element on the same line as it, or as the comma
	// following it.
	trailing []*sitter.Node
}

// items is the decomposition of a list's children.
type items struct {
	elements []*item

	// Comments after the last element that are not on its line.
	dangling []*sitter.Node
}

// plain reports whether no comments are attached anywhere in the list.
func (is items) plain() bool {
	if len(is.dangling) > 0 {
		return false
	}
	for _, item := range is.elements {
		if len(item.leading) > 0 || len(item.trailing) > 0 {
			return false
		}
	}
	return true
}

// items attaches each comment in a list to a neighboring element.
func (p *printer) items(n *sitter.Node) items {
	var (
		out     items
		last    *item
		lastRow uint32
		pending []*sitter.Node
	)
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		switch {
		case child == nil:
		case syntax.IsComment(child):
			if last != nil && len(pending) == 0 && child.StartPoint().Row == lastRow {
				last.trailing = append(last.trailing, child)
				continue
			}
			pending = append(pending, child)
		case child.Type() == ",":
			if last != nil && len(pending) == 0 {
				lastRow = child.EndPoint().Row
			}
		case child.IsNamed():
			last = &item{node: child, leading: pending}
			pending = nil
			lastRow = child.EndPoint().Row
			out.elements = append(out.elements, last)
		}
	}
	out.dangling = pending
	return out
}
