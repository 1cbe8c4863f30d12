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
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/source"
)

// Comment is a comment found in a syntax tree.
type Comment struct {
	// The raw comment text, delimiters included.
	Text  string
	Range source.Range
}

// Line returns the 1-indexed line on which the comment ends.
func (c Comment) Line() int {
	return c.Range.End.Line + 1
}

// Comments collects every comment reachable from root, in source order.
func Comments(root *sitter.Node, text []byte) []Comment {
	var comments []Comment
	var collect func(n *sitter.Node)
	collect = func(n *sitter.Node) {
		if IsComment(n) {
			comments = append(comments, Comment{Text: n.Content(text), Range: RangeOf(n)})
			return
		}
		for i := range int(n.ChildCount()) {
			if child := n.Child(i); child != nil {
				collect(child)
			}
		}
	}
	collect(root)
	return comments
}
