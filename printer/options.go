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
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/config"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/doc"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

// ListHook is called on the document of every list, after the lists nested
// inside of it have been printed. It may rewrite the document in place, or
// return a different one.
type ListHook func(list syntax.List, fragment doc.Doc) (doc.Doc, error)

// Options controls the behavior of the printer.
type Options struct {
	// Where broken lists get a trailing comma. Defaults to
	// [config.TrailingCommaAll].
	TrailingComma config.TrailingComma

	// If set, argument and parameter lists are printed as lists, and are
	// passed to Hook. Otherwise they are reproduced verbatim.
	Arguments bool

	// Called on every list document. May be nil.
	Hook ListHook
}

// withDefaults returns a copy of opts with default values applied.
func (opts Options) withDefaults() Options {
	if opts.TrailingComma == "" {
		opts.TrailingComma = config.TrailingCommaAll
	}
	return opts
}

// OptionsFor returns the printer options implied by a configuration.
func OptionsFor(opts config.Options, hook ListHook) Options {
	return Options{
		TrailingComma: opts.TrailingComma,
		Arguments:     opts.WrapArgumentLists,
		Hook:          hook,
	}
}
