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
	"bytes"
	"math"
	"strings"

	"github.com/rivo/uniseg"
)

const (
	modeBreak mode = iota
	modeFlat
)

// mode is whether the innermost enclosing group is being printed broken or
// flat.
type mode byte

// Options specifies configuration for [Render].
type Options struct {
	// The maximum number of columns to render before breaking a group. A
	// value of zero implies an infinite width.
	MaxWidth int

	// The number of columns a tab character and an indentation level count
	// as. Defaults to 2.
	TabWidth int

	// If true, each indentation level is a tab rather than TabWidth spaces.
	UseTabs bool
}

// WithDefaults replaces any unset (read: zero value) fields of an Options
// which specify a default value with that default value.
func (o Options) WithDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = math.MaxInt
	}
	if o.TabWidth <= 0 {
		o.TabWidth = 2
	}
	return o
}

// Render prints a document to a string.
//
// The outermost level is treated as broken. Render does not modify d.
func Render(options Options, d Doc) string {
	options = options.WithDefaults()
	l := &layout{broken: make(map[*Group]bool)}
	l.propagate(d)

	p := printer{Options: options, layout: l}
	if options.UseTabs {
		p.unit = "\t"
	} else {
		p.unit = strings.Repeat(" ", options.TabWidth)
	}
	p.print(d, "", modeBreak)
	p.flushSuffixes()
	return string(p.out)
}

// layout holds the break decisions that can be made before printing.
type layout struct {
	broken map[*Group]bool
}

// propagate records which groups are forced to break, and reports whether d
// forces its enclosing group to break.
//
// A group is forced to break by a hard line, a [BreakParent], a multi-line
// [Text], a group with Break set, or a nested group that is forced to break.
func (l *layout) propagate(d Doc) bool {
	switch d := d.(type) {
	case *Text:
		return strings.Contains(d.Value, "\n")
	case *Line:
		return d.Hard
	case *BreakParent:
		return true
	case *Concat:
		var broken bool
		for _, part := range d.Parts {
			// Every part must be visited, so that nested groups get marked.
			broken = l.propagate(part) || broken
		}
		return broken
	case *Indent:
		return l.propagate(d.Contents)
	case *Align:
		return l.propagate(d.Contents)
	case *LineSuffix:
		return l.propagate(d.Contents)
	case *IfBreak:
		a := l.propagate(d.Break)
		b := l.propagate(d.Flat)
		return a || b
	case *Group:
		broken := l.propagate(d.Contents) || d.Break
		l.broken[d] = broken
		return broken
	}
	return false
}

// printer holds state for converting a laid-out document into a string.
type printer struct {
	Options
	layout *layout

	out    []byte
	column int
	unit   string

	// Deferred [LineSuffix] contents, flushed before the next newline.
	suffixes []suffix
}

type suffix struct {
	doc    Doc
	indent string
	mode   mode
}

// print prints d with the given indentation, in the mode of the innermost
// enclosing group.
func (p *printer) print(d Doc, indent string, m mode) {
	switch d := d.(type) {
	case *Text:
		p.write(d.Value)

	case *Concat:
		for _, part := range d.Parts {
			p.print(part, indent, m)
		}

	case *Indent:
		p.print(d.Contents, indent+p.unit, m)

	case *Align:
		p.print(d.Contents, d.By, m)

	case *Group:
		next := modeFlat
		// Contents with no flat width cannot make an overflowing line any
		// longer, so they are measured against at least zero columns.
		if p.layout.broken[d] ||
			(m == modeBreak && !p.fits(d.Contents, max(p.MaxWidth-p.column, 0))) {
			next = modeBreak
		}
		p.print(d.Contents, indent, next)

	case *IfBreak:
		if m == modeBreak {
			p.print(d.Break, indent, m)
		} else {
			p.print(d.Flat, indent, m)
		}

	case *LineSuffix:
		p.suffixes = append(p.suffixes, suffix{doc: d.Contents, indent: indent, mode: m})

	case *Line:
		if m == modeFlat && !d.Hard {
			if !d.Soft {
				p.write(" ")
			}
			return
		}
		p.flushSuffixes()
		p.newline(indent)
	}
}

// fits reports whether d can be printed flat within width columns.
func (p *printer) fits(d Doc, width int) bool {
	rest := []Doc{d}
	for len(rest) > 0 && width >= 0 {
		d := rest[len(rest)-1]
		rest = rest[:len(rest)-1]

		switch d := d.(type) {
		case *Text:
			if strings.Contains(d.Value, "\n") {
				return false
			}
			width -= stringWidth(p.Options, -1, d.Value)
		case *Line:
			switch {
			case d.Hard:
				return false
			case !d.Soft:
				width--
			}
		case *Concat:
			for i := len(d.Parts) - 1; i >= 0; i-- {
				rest = append(rest, d.Parts[i])
			}
		case *Indent:
			rest = append(rest, d.Contents)
		case *Align:
			rest = append(rest, d.Contents)
		case *Group:
			if p.layout.broken[d] {
				return false
			}
			rest = append(rest, d.Contents)
		case *IfBreak:
			if d.Flat != nil {
				rest = append(rest, d.Flat)
			}
		}
	}
	return width >= 0
}

// write appends text to the output buffer, tracking the current column.
func (p *printer) write(text string) {
	p.out = append(p.out, text...)
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		p.column = stringWidth(p.Options, 0, text[i+1:])
		return
	}
	p.column = stringWidth(p.Options, p.column, text)
}

// newline ends the current line, trimming trailing whitespace from it, and
// starts a new line at the given indentation.
func (p *printer) newline(indent string) {
	p.out = bytes.TrimRight(p.out, " \t")
	p.out = append(p.out, '\n')
	p.out = append(p.out, indent...)
	p.column = stringWidth(p.Options, 0, indent)
}

func (p *printer) flushSuffixes() {
	for len(p.suffixes) > 0 {
		pending := p.suffixes
		p.suffixes = nil
		for _, s := range pending {
			p.print(s.doc, s.indent, s.mode)
		}
	}
}

// stringWidth calculates the rendered width of text if placed at the given
// column, accounting for tabstops.
//
// If column is -1, all tabstops are given their maximum width. This is used
// when measuring text whose final column is not known yet.
func stringWidth(options Options, column int, text string) int {
	maxWidth := column < 0
	column = max(0, column)

	for i, next := range strings.Split(text, "\t") {
		if i > 0 {
			tab := options.TabWidth
			if !maxWidth {
				tab -= column % options.TabWidth
			}
			column += tab
		}
		column += uniseg.StringWidth(next)
	}
	return column
}
