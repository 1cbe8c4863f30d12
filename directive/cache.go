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

package directive

import (
	"github.com/charmbracelet/log"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/report"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

// Cache memoizes directive tables for the duration of a single formatting
// pass, so that each syntax tree's comments are scanned at most once.
//
// A Cache must not outlive the pass that created it, and must not be used
// from more than one goroutine.
type Cache struct {
	tables map[syntax.RootID]*Table
	report *report.Report
	logger *log.Logger
}

// NewCache returns an empty cache. Diagnostics for malformed directives are
// pushed to r; r and logger may be nil.
func NewCache(r *report.Report, logger *log.Logger) *Cache {
	return &Cache{
		tables: make(map[syntax.RootID]*Table),
		report: r,
		logger: logger,
	}
}

// Table returns the directive table for file, building it on first use.
func (c *Cache) Table(file *syntax.File) *Table {
	if table, ok := c.tables[file.ID]; ok {
		return table
	}
	table := Parse(syntax.Comments(file.Root(), file.Text), c.report, c.logger)
	c.tables[file.ID] = table
	return table
}

// Len returns the number of tables in the cache.
func (c *Cache) Len() int {
	return len(c.tables)
}
