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

package multiline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/config"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/doc"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/printer"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/report"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

// ErrUnsupported is returned when asked to format a file whose language
// cannot be determined from its path.
var ErrUnsupported = errors.New("unsupported file type")

// Formatter formats source files according to a fixed configuration.
//
// A Formatter is safe for concurrent use.
type Formatter struct {
	options config.Options
	logger  *log.Logger

	// Source of unique syntax tree IDs.
	roots atomic.Uint64
}

// Option configures a [Formatter].
type Option func(*Formatter)

// WithLogger sets the logger the formatter writes debug output to. By
// default, nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(f *Formatter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New returns a new formatter.
func New(opts config.Options, options ...Option) *Formatter {
	f := &Formatter{
		options: opts,
		logger:  log.New(io.Discard),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// Options returns the formatter's configuration.
func (f *Formatter) Options() config.Options {
	return f.options
}

// Format formats src, the contents of the file at path. The language is
// chosen by the path's extension.
//
// The returned report holds warnings about malformed directives; it is
// returned even if formatting fails.
func (f *Formatter) Format(ctx context.Context, path string, src []byte) (string, *report.Report, error) {
	pass := f.newPass(ctx, path)
	defer pass.close()

	lang, ok := syntax.LanguageForPath(path)
	if !ok {
		return "", pass.report, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	file, err := syntax.Parse(ctx, path, src, lang)
	if err != nil {
		return "", pass.report, err
	}
	defer file.Close()
	file.ID = syntax.RootID(f.roots.Add(1))

	d, err := printer.Print(printer.OptionsFor(f.options, pass.hook(file)), file)
	if err != nil {
		return "", pass.report, fmt.Errorf("format %s: %w", path, err)
	}

	out := doc.Render(f.options.DocOptions(), d)
	pass.logger.Debug("formatted file",
		"lists", pass.lists,
		"reflowed", pass.reflowed,
		"diagnostics", pass.report.Len(),
		"changed", out != string(src),
	)
	return out, pass.report, nil
}
