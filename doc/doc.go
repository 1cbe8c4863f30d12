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

// Package doc is a document tree for pretty printing, in the style of
// Wadler's "prettier printer" and of Prettier's doc builders.
//
// A document is a tree of [Doc] nodes. Each node is one of a closed set of
// kinds (see [Kind]); callers dispatch with a type switch or on [Doc.Kind],
// never by probing fields. Text leaves carry the output, [Line] leaves mark
// places where the renderer may break a line, and structural nodes
// ([Group], [Indent], [Align], [IfBreak], [LineSuffix]) control how those
// breaks are taken.
//
// Unlike most pretty printing libraries, documents here are mutable: a
// formatting pass may locate nodes with [Walk] and rewrite slots in place
// with [SetChild] before handing the tree to [Render].
package doc

import "fmt"

const (
	kindNone Kind = iota //nolint:unused

	KindText        // See [Text].
	KindConcat      // See [Concat].
	KindIndent      // See [Indent].
	KindAlign       // See [Align].
	KindGroup       // See [Group].
	KindIfBreak     // See [IfBreak].
	KindLineSuffix  // See [LineSuffix].
	KindLine        // See [Line].
	KindBreakParent // See [BreakParent].
)

// NoIndex is the index reported for a node that sits in a single-child slot,
// or at the root of a walk.
const NoIndex = -1

// Kind is the discriminant of a [Doc].
type Kind byte

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindConcat:
		return "concat"
	case KindIndent:
		return "indent"
	case KindAlign:
		return "align"
	case KindGroup:
		return "group"
	case KindIfBreak:
		return "if-break"
	case KindLineSuffix:
		return "line-suffix"
	case KindLine:
		return "line"
	case KindBreakParent:
		return "break-parent"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// Doc is a node in a document tree.
//
// The set of implementations is closed; it is exactly the pointer types
// declared in this package.
type Doc interface {
	// Kind returns which kind of node this is.
	Kind() Kind

	sealed()
}

// Text is a leaf that is printed verbatim.
//
// Newlines inside of a Text are printed as-is, without indentation, and
// force every enclosing [Group] to break.
type Text struct {
	Value string
}

// Concat is an ordered sequence of documents, printed one after another.
type Concat struct {
	Parts []Doc
}

// Indent increases the indentation of every line break in Contents by one
// level.
type Indent struct {
	Contents Doc
}

// Align sets the indentation of every line break in Contents to exactly By,
// discarding any enclosing indentation.
type Align struct {
	By       string
	Contents Doc
}

// Group is a unit that is either printed entirely flat, or broken.
//
// A group is broken if Break is set, if it (transitively) contains a
// [BreakParent], a broken group or a multi-line [Text], or if it does not
// fit in the remaining width when printed flat.
type Group struct {
	Contents Doc
	Break    bool
}

// IfBreak prints Break if the enclosing group is broken, and Flat
// otherwise. Either may be nil.
type IfBreak struct {
	Break, Flat Doc
}

// LineSuffix defers Contents until just before the next line break. It is
// used for trailing line comments.
type LineSuffix struct {
	Contents Doc
}

// Line is a possible line break.
//
// In a flat group, a Line prints as a single space, or as nothing if Soft
// is set. In a broken group it prints as a newline followed by the current
// indentation. A Hard line is always a newline.
type Line struct {
	Soft, Hard bool
}

// BreakParent forces every enclosing group to break.
type BreakParent struct{}

func (*Text) Kind() Kind        { return KindText }
func (*Concat) Kind() Kind      { return KindConcat }
func (*Indent) Kind() Kind      { return KindIndent }
func (*Align) Kind() Kind       { return KindAlign }
func (*Group) Kind() Kind       { return KindGroup }
func (*IfBreak) Kind() Kind     { return KindIfBreak }
func (*LineSuffix) Kind() Kind  { return KindLineSuffix }
func (*Line) Kind() Kind        { return KindLine }
func (*BreakParent) Kind() Kind { return KindBreakParent }

func (*Text) sealed()        {}
func (*Concat) sealed()      {}
func (*Indent) sealed()      {}
func (*Align) sealed()       {}
func (*Group) sealed()       {}
func (*IfBreak) sealed()     {}
func (*LineSuffix) sealed()  {}
func (*Line) sealed()        {}
func (*BreakParent) sealed() {}

// Lit returns a new [Text].
func Lit(text string) *Text {
	return &Text{Value: text}
}

// Cat returns a new [Concat] of the given parts. Nil parts are dropped.
func Cat(parts ...Doc) *Concat {
	c := &Concat{Parts: make([]Doc, 0, len(parts))}
	for _, part := range parts {
		if part != nil {
			c.Parts = append(c.Parts, part)
		}
	}
	return c
}

// LineOrSpace returns a line that prints as a space in flat groups.
func LineOrSpace() *Line {
	return &Line{}
}

// Softline returns a line that prints as nothing in flat groups.
func Softline() *Line {
	return &Line{Soft: true}
}

// Hardline returns a line break that is always taken and that breaks every
// enclosing group.
//
// Every call returns fresh nodes; documents must not share nodes.
func Hardline() *Concat {
	return &Concat{Parts: []Doc{&Line{Hard: true}, &BreakParent{}}}
}

// IsHardline reports whether d has the shape returned by [Hardline].
func IsHardline(d Doc) bool {
	c, ok := d.(*Concat)
	if !ok || len(c.Parts) != 2 {
		return false
	}
	line, ok := c.Parts[0].(*Line)
	if !ok || !line.Hard {
		return false
	}
	_, ok = c.Parts[1].(*BreakParent)
	return ok
}

// IsText reports whether d is a [Text] with exactly the given value.
func IsText(d Doc, value string) bool {
	t, ok := d.(*Text)
	return ok && t.Value == value
}
