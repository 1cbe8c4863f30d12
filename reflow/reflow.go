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

// Package reflow rewrites the document of a printed list so that its
// elements are laid out according to a line-count pattern.
//
// The host printer produces a list as a group that is either entirely flat
// or one element per line. [Reflow] edits that document in place: it forces
// the group to break after the opening delimiter, and then replaces every
// separator between two elements with either a hard line break or a single
// space, so that line i of the list holds pattern[i % len(pattern)]
// elements.
package reflow

import (
	"errors"
	"fmt"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/directive"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/doc"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

// ErrUnexpectedShape is returned when a list's document does not have the
// structure the host printer is known to produce.
var ErrUnexpectedShape = errors.New("unexpected list document shape")

// Policy is the resolved wrapping policy for one list.
type Policy struct {
	// The number of elements on each line, cycled. Empty means one element
	// per line once wrapping is active.
	LineCounts []int

	// Lists with at most this many elements are left as the host printed
	// them, unless LineCounts is set or ManualWrap is true.
	WrapThreshold directive.Threshold

	// Set when the source already had the list broken across lines.
	ManualWrap bool
}

// Active reports whether a list with the given number of elements should be
// reflowed under p.
func (p Policy) Active(elements int) bool {
	return len(p.LineCounts) > 0 || p.ManualWrap || p.WrapThreshold.Exceeded(elements)
}

// target returns the number of elements that belong on the given 0-indexed
// line.
func (p Policy) target(line int) int {
	if len(p.LineCounts) == 0 {
		return 1
	}
	return p.LineCounts[line%len(p.LineCounts)]
}

// Reflow rewrites fragment, the printed document of list, according to
// policy. It returns fragment itself.
//
// Only the list's own delimiters are considered: nested lists inside of
// elements are left alone, since they are reflowed when they are printed.
//
// If the policy turns out not to apply to list, fragment is returned
// unchanged. If fragment does not look like a printed list, Reflow returns
// an error wrapping [ErrUnexpectedShape], and fragment is unchanged.
func Reflow(fragment doc.Doc, list syntax.List, policy Policy) (doc.Doc, error) {
	open, closing := list.Kind.Delimiters()
	r := &reflower{
		policy: policy,
		list:   list,
		open:   open,
		close:  closing,
	}
	if err := r.run(fragment); err != nil {
		r.rollback()
		return fragment, err
	}
	if !policy.Active(list.Len()) {
		r.rollback()
	}
	return fragment, nil
}

// reflower holds the state of a single call to [Reflow].
type reflower struct {
	policy      Policy
	list        syntax.List
	open, close string

	// Every mutation pushes its inverse here.
	undo []func()
}

func (r *reflower) rollback() {
	for i := len(r.undo) - 1; i >= 0; i-- {
		r.undo[i]()
	}
	r.undo = nil
}

// set replaces a child slot, recording the inverse.
func (r *reflower) set(parent doc.Doc, index int, child doc.Doc) {
	old := doc.SetChild(parent, index, child)
	r.undo = append(r.undo, func() { doc.SetChild(parent, index, old) })
}

func (r *reflower) run(fragment doc.Doc) error {
	parent, err := r.findOpen(fragment)
	if err != nil {
		return err
	}

	if len(parent.Parts) < 2 {
		return r.errorf("nothing follows %q", r.open)
	}
	if doc.IsText(parent.Parts[1], r.close) {
		return nil
	}

	closeAt := -1
	for i := 2; i < len(parent.Parts); i++ {
		if doc.IsText(parent.Parts[i], r.close) {
			closeAt = i
			break
		}
	}
	if closeAt < 0 {
		return r.errorf("missing %q", r.close)
	}

	indent, err := r.indent(parent)
	if err != nil {
		return err
	}

	finalBreak := hasFinalBreak(parent.Parts[2:closeAt])
	r.breakGuards(parent.Parts[2:closeAt])

	if err := r.separate(indent.Contents); err != nil {
		return err
	}

	if !finalBreak {
		parent.Insert(closeAt, doc.Hardline())
		r.undo = append(r.undo, func() { parent.Remove(closeAt) })
	}

	r.breakAfterOpen(indent)
	return nil
}

// findOpen finds the sequence that begins with the list's opening
// delimiter.
func (r *reflower) findOpen(fragment doc.Doc) (*doc.Concat, error) {
	var found doc.Cursor
	err := doc.Walk(fragment, func(c doc.Cursor) (bool, error) {
		if doc.IsText(c.Node, r.open) {
			found = c.Clone()
			return false, doc.SkipAll
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if found.Node == nil {
		return nil, r.errorf("no %q in %s", r.open, doc.Debug(fragment))
	}
	parent, ok := found.Parent().(*doc.Concat)
	if !ok || found.Index != 0 {
		return nil, r.errorf("%q is not the start of a sequence", r.open)
	}
	return parent, nil
}

// indent returns the indentation node that holds the list's elements.
//
// Argument lists are sometimes printed without one, for example when the
// sole argument hugs the parentheses; those get wrapped in a fresh indent.
func (r *reflower) indent(parent *doc.Concat) (*doc.Indent, error) {
	switch next := parent.Parts[1].(type) {
	case *doc.Indent:
		return next, nil
	case *doc.Group, *doc.Align, *doc.Concat:
		if r.list.Kind != syntax.Arguments {
			break
		}
		indent := &doc.Indent{Contents: next}
		r.set(parent, 1, indent)
		return indent, nil
	}
	return nil, r.errorf("%q is followed by %s", r.open, doc.Debug(parent.Parts[1]))
}

// separate walks the element sequence, turning the line after each comma
// into either a hard break or a space.
func (r *reflower) separate(elements doc.Doc) error {
	var line int
	column := 1
	return doc.Walk(elements, func(c doc.Cursor) (bool, error) {
		switch c.Node.Kind() {
		case doc.KindGroup, doc.KindIndent, doc.KindAlign, doc.KindIfBreak, doc.KindLineSuffix:
			return false, nil
		case doc.KindText:
			seq, ok := c.Parent().(*doc.Concat)
			if !ok || !doc.IsText(c.Node, ",") || c.Index+1 >= len(seq.Parts) {
				return false, nil
			}
			if column >= r.policy.target(line) {
				r.set(seq, c.Index+1, doc.Hardline())
				column = 1
				line++
			} else {
				r.set(seq, c.Index+1, doc.Lit(" "))
				column++
			}
			return false, nil
		}
		return true, nil
	})
}

// breakGuards forces open every group between the elements and the closing
// delimiter that holds nothing but an [doc.IfBreak]. Hugged argument lists
// carry their trailing comma in such a group.
func (r *reflower) breakGuards(tail []doc.Doc) {
	for _, d := range tail {
		group, ok := d.(*doc.Group)
		if !ok || group.Break {
			continue
		}
		if _, ok := group.Contents.(*doc.IfBreak); !ok {
			continue
		}
		group.Break = true
		r.undo = append(r.undo, func() { group.Break = false })
	}
}

// breakAfterOpen forces the list's group to break, so that the first
// element starts on its own line.
func (r *reflower) breakAfterOpen(indent *doc.Indent) {
	contents := indent.Contents
	if seq, ok := contents.(*doc.Concat); ok && len(seq.Parts) > 0 {
		if _, done := seq.Parts[0].(*doc.BreakParent); done {
			return
		}
	}

	wrapped := doc.Cat(&doc.BreakParent{})
	if !startsWithLine(contents) {
		wrapped.Parts = append(wrapped.Parts, doc.Softline())
	}
	wrapped.Parts = append(wrapped.Parts, contents)
	r.set(indent, doc.NoIndex, wrapped)
}

func (r *reflower) errorf(format string, args ...any) error {
	return fmt.Errorf("%v list at line %d: %w: %s",
		r.list.Kind, r.list.Line(), ErrUnexpectedShape, fmt.Sprintf(format, args...))
}

// hasFinalBreak reports whether the nodes between the elements and the
// closing delimiter already end the last line.
func hasFinalBreak(tail []doc.Doc) bool {
	for _, d := range tail {
		if ifBreak, ok := d.(*doc.IfBreak); ok && containsLine(ifBreak.Break) {
			return true
		}
	}
	if len(tail) == 0 {
		return false
	}
	last := tail[len(tail)-1]
	if _, ok := last.(*doc.Line); ok {
		return true
	}
	return doc.IsHardline(last)
}

func containsLine(d doc.Doc) bool {
	var found bool
	_ = doc.Walk(d, func(c doc.Cursor) (bool, error) {
		if c.Node.Kind() == doc.KindLine {
			found = true
			return false, doc.SkipAll
		}
		return true, nil
	})
	return found
}

func startsWithLine(d doc.Doc) bool {
	for {
		switch v := d.(type) {
		case *doc.Line:
			return true
		case *doc.Concat:
			if len(v.Parts) == 0 {
				return false
			}
			d = v.Parts[0]
		default:
			return false
		}
	}
}
