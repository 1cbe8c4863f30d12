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

// Package multiline reflows array literals and argument lists in
// JavaScript and TypeScript source.
//
// A formatter prints a file with a minimal host printer (see package
// printer), and rewrites the document of each list it prints so that the
// list's elements are laid out according to a per-list policy (see package
// reflow).
//
// # Policies
//
// The policy of a list is resolved from, in order of precedence:
//
//  1. A "next" directive in a comment ending on the line right before the
//     list.
//  2. The latest "set" directive before the list that has not been reset.
//  3. The formatter's configuration.
//
// For example:
//
//	// prettier-multiline-arrays-next-line-pattern: 2 1
//	const grid = [
//	  a, b,
//	  c,
//	  d, e,
//	];
//
// A list without an explicit pattern or threshold directive that was
// written across multiple lines, or with a trailing comma, stays broken with
// one element per line.
//
// # Passes
//
// Each call to [Formatter.Format] is a self-contained pass: it parses the
// file, scans its comments for directives once, and drops everything it
// built before returning. Passes share no mutable state, so a single
// [Formatter] may format many files concurrently.
package multiline
