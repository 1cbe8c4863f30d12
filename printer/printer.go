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

// Package printer is the host printer: it converts a parsed file into a
// document that reproduces the source.
//
// Everything except lists is reproduced verbatim. Each list is printed as a
// group that is either flat, or broken with one element per line:
//
//	group(["[", indent([softline, e1, ",", line, e2]), if-break(","), softline, "]"])
//
// Every list document is passed through [Options.Hook] before it is placed
// in its parent's document.
package printer

import (
	"errors"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/doc"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

// Print converts file into a document.
//
// Returns the first error returned by the hook, if any. The document is
// only meaningful if the error is nil.
func Print(options Options, file *syntax.File) (doc.Doc, error) {
	p := &printer{
		options: options.withDefaults(),
		file:    file,
	}
	root := p.verbatim(file.Root(), 0, uint32(len(file.Text)), true)
	if p.errs != nil {
		return nil, errors.Join(p.errs...)
	}
	return root, nil
}

// printer tracks state for printing a single file.
type printer struct {
	options Options
	file    *syntax.File
	errs    []error
}

// verbatim prints the source text between start and end, which lies within
// n, substituting the document of every list in it.
//
// Lists that do not start on the first line of the span are aligned to the
// indentation of their source line, since their position within the output
// is not known otherwise. If anywhere is set, every list is aligned.
func (p *printer) verbatim(n *sitter.Node, start, end uint32, anywhere bool) *doc.Concat {
	out := doc.Cat()
	text := p.file.Text
	cursor := start
	for _, list := range p.lists(n) {
		if cursor < list.StartByte() {
			out.Parts = append(out.Parts, doc.Lit(string(text[cursor:list.StartByte()])))
		}

		d := p.list(list)
		if anywhere || strings.Contains(string(text[start:list.StartByte()]), "\n") {
			d = &doc.Align{By: p.indentation(list), Contents: d}
		}
		out.Parts = append(out.Parts, d)
		cursor = list.EndByte()
	}
	if cursor < end {
		out.Parts = append(out.Parts, doc.Lit(string(text[cursor:end])))
	}
	return out
}

// lists returns the outermost list nodes below n, in source order.
func (p *printer) lists(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	var find func(n *sitter.Node)
	find = func(n *sitter.Node) {
		for i := range int(n.NamedChildCount()) {
			child := n.NamedChild(i)
			if child == nil {
				continue
			}
			if _, ok := syntax.ListOf(child, p.options.Arguments); ok {
				out = append(out, child)
				continue
			}
			find(child)
		}
	}
	find(n)
	return out
}

// indentation returns the leading whitespace of the source line n starts
// on.
func (p *printer) indentation(n *sitter.Node) string {
	line := p.file.Lines[n.StartPoint().Row]
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// list prints a list node, and passes its document to the hook.
func (p *printer) list(n *sitter.Node) doc.Doc {
	list, _ := syntax.ListOf(n, p.options.Arguments)
	if hasHoles(n) {
		// Holes are only representable verbatim; such lists are left alone.
		return p.verbatim(n, n.StartByte(), n.EndByte(), false)
	}

	fragment := p.layout(list, p.items(n))
	if p.options.Hook == nil {
		return fragment
	}
	out, err := p.options.Hook(list, fragment)
	if err != nil {
		p.errs = append(p.errs, err)
		return fragment
	}
	return out
}

// layout builds the document for a list out of its items.
func (p *printer) layout(list syntax.List, items items) doc.Doc {
	open, closing := list.Kind.Delimiters()
	if len(items.elements) == 0 && len(items.dangling) == 0 {
		return &doc.Group{Contents: doc.Cat(doc.Lit(open), doc.Lit(closing))}
	}

	if list.Kind == syntax.Arguments && items.plain() && p.hug(items.elements) {
		// Hugged arguments stay on the line of the parentheses.
		args := doc.Cat()
		for i, item := range items.elements {
			if i > 0 {
				args.Parts = append(args.Parts, doc.Lit(","), doc.Lit(" "))
			}
			args.Parts = append(args.Parts, p.element(item))
		}
		var trailing doc.Doc
		if p.trailingComma(list.Kind, items) {
			// The guard stays flat unless the list is reflowed.
			trailing = &doc.Group{Contents: &doc.IfBreak{Break: doc.Lit(",")}}
		}
		return doc.Cat(doc.Lit(open), args, trailing, doc.Lit(closing))
	}

	if len(items.elements) == 0 {
		return &doc.Group{Contents: doc.Cat(
			doc.Lit(open),
			&doc.Indent{Contents: doc.Cat(doc.Softline(), p.dangling(items.dangling))},
			doc.Softline(),
			doc.Lit(closing),
		)}
	}

	body := doc.Cat(doc.Softline())
	for i, item := range items.elements {
		if i > 0 {
			body.Parts = append(body.Parts, doc.Lit(","), doc.LineOrSpace())
		}
		body.Parts = append(body.Parts, p.element(item))
	}

	var trailing doc.Doc
	if p.trailingComma(list.Kind, items) {
		trailing = &doc.IfBreak{Break: doc.Lit(",")}
	}
	var dangling doc.Doc
	if len(items.dangling) > 0 {
		dangling = &doc.Indent{Contents: doc.Cat(doc.Hardline(), p.dangling(items.dangling))}
	}

	return &doc.Group{Contents: doc.Cat(
		doc.Lit(open),
		&doc.Indent{Contents: body},
		trailing,
		dangling,
		doc.Softline(),
		doc.Lit(closing),
	)}
}

// element prints a single list element together with its comments.
func (p *printer) element(item *item) doc.Doc {
	out := doc.Cat()
	for i, comment := range item.leading {
		out.Parts = append(out.Parts, doc.Lit(p.file.Content(comment)))
		next := item.node
		if i+1 < len(item.leading) {
			next = item.leading[i+1]
		}
		if isLineComment(p.file.Content(comment)) || comment.EndPoint().Row < next.StartPoint().Row {
			out.Parts = append(out.Parts, doc.Hardline())
		} else {
			out.Parts = append(out.Parts, doc.Lit(" "))
		}
	}

	if _, ok := syntax.ListOf(item.node, p.options.Arguments); ok {
		out.Parts = append(out.Parts, p.list(item.node))
	} else {
		out.Parts = append(out.Parts, p.verbatim(item.node, item.node.StartByte(), item.node.EndByte(), false).Parts...)
	}

	for _, comment := range item.trailing {
		text := p.file.Content(comment)
		if isLineComment(text) {
			out.Parts = append(out.Parts, &doc.LineSuffix{Contents: doc.Lit(" " + text)}, &doc.BreakParent{})
		} else {
			out.Parts = append(out.Parts, doc.Lit(" "+text))
		}
	}
	return &doc.Group{Contents: out}
}

// dangling prints comments that are not attached to any element, one per
// line.
func (p *printer) dangling(comments []*sitter.Node) doc.Doc {
	out := doc.Cat()
	for i, comment := range comments {
		if i > 0 {
			out.Parts = append(out.Parts, doc.Hardline())
		}
		out.Parts = append(out.Parts, doc.Lit(p.file.Content(comment)))
	}
	if isLineComment(p.file.Content(comments[len(comments)-1])) {
		out.Parts = append(out.Parts, &doc.BreakParent{})
	}
	return out
}

// trailingComma decides whether a broken list gets a trailing comma.
func (p *printer) trailingComma(kind syntax.Kind, items items) bool {
	last := items.elements[len(items.elements)-1].node
	if strings.HasPrefix(last.Type(), "rest_") {
		return false
	}
	if kind == syntax.Arguments {
		return p.options.TrailingComma.Arguments()
	}
	return p.options.TrailingComma.Arrays()
}

// hug reports whether an argument list is printed against its parentheses.
//
// A sole object, array, function or template is hugged. So is a trailing
// function after arguments that fit on one line, as in
// describe('name', () => { ... }).
func (p *printer) hug(elements []*item) bool {
	if len(elements) == 0 {
		return false
	}
	last := elements[len(elements)-1].node
	switch last.Type() {
	case "arrow_function", "function", "function_expression":
	case "object", "array", "object_pattern", "array_pattern", "template_string":
		if len(elements) > 1 {
			return false
		}
	default:
		return false
	}
	for _, item := range elements[:len(elements)-1] {
		if strings.Contains(p.file.Content(item.node), "\n") {
			return false
		}
	}
	return true
}

// hasHoles reports whether an array has elisions, like [1, , 2].
func hasHoles(n *sitter.Node) bool {
	separated := true
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		switch {
		case child == nil || syntax.IsComment(child):
		case child.Type() == ",":
			if separated {
				return true
			}
			separated = true
		case child.IsNamed():
			separated = false
		}
	}
	return false
}

func isLineComment(text string) bool {
	return strings.HasPrefix(text, "//")
}
