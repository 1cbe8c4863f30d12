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

// Package syntax is the parser front end: it parses JavaScript and
// TypeScript with tree-sitter, and exposes just enough of the resulting
// syntax tree to find list-like constructs and comments.
package syntax

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/source"
)

const (
	JavaScript Language = 1 + iota
	TypeScript
	TSX
)

// ErrSyntax is returned by [Parse] when the input does not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// Language is a source language the parser understands.
type Language int

// String implements [fmt.Stringer].
func (l Language) String() string {
	switch l {
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// LanguageForPath picks a language from a file extension.
func LanguageForPath(path string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript, true
	case ".ts", ".mts", ".cts":
		return TypeScript, true
	case ".tsx":
		return TSX, true
	default:
		return 0, false
	}
}

func (l Language) grammar() (*sitter.Language, error) {
	switch l {
	case JavaScript:
		return javascript.GetLanguage(), nil
	case TypeScript:
		return typescript.GetLanguage(), nil
	case TSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %v", l)
	}
}

// RootID identifies the root of one parsed syntax tree within a formatting
// pass.
type RootID uint64

// File is a parsed source file.
type File struct {
	Path     string
	Text     []byte
	Lines    []string
	Language Language

	// Assigned by the formatting pass that owns this file.
	ID RootID

	tree *sitter.Tree
}

// Parse parses text as the given language.
//
// The returned file must be closed with [File.Close] to release the
// tree-sitter tree.
func Parse(ctx context.Context, path string, text []byte, lang Language) (*File, error) {
	grammar, err := lang.grammar()
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, text)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	file := &File{
		Path:     path,
		Text:     text,
		Lines:    source.Lines(string(text)),
		Language: lang,
		tree:     tree,
	}
	if root := tree.RootNode(); root.HasError() {
		// Nodes live inside the tree, so the location is read before closing.
		at := RangeOf(firstError(root)).Start
		file.Close()
		return nil, fmt.Errorf("%w in %s at %v", ErrSyntax, path, at)
	}
	return file, nil
}

// Root returns the root node of the file's syntax tree.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Close releases the syntax tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Content returns the source text of n.
func (f *File) Content(n *sitter.Node) string {
	return n.Content(f.Text)
}

// RangeOf converts the extent of n into a [source.Range].
func RangeOf(n *sitter.Node) source.Range {
	start, end := n.StartPoint(), n.EndPoint()
	return source.Range{
		Start: source.Location{Line: int(start.Row), Column: int(start.Column) + 1},
		End:   source.Location{Line: int(end.Row), Column: int(end.Column) + 1},
	}
}

// IsComment reports whether n is a comment.
func IsComment(n *sitter.Node) bool {
	return n.Type() == "comment"
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child != nil && child.HasError() {
			return firstError(child)
		}
	}
	return n
}
