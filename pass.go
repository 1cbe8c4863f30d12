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

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/config"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/directive"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/doc"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/printer"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/reflow"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/report"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

// pass is the state of a single call to [Formatter.Format].
type pass struct {
	ctx     context.Context
	id      uuid.UUID
	options config.Options
	logger  *log.Logger
	report  *report.Report
	cache   *directive.Cache

	lists, reflowed int
}

func (f *Formatter) newPass(ctx context.Context, path string) *pass {
	id := uuid.New()
	logger := f.logger.With("pass", id.String(), "path", path)
	r := &report.Report{Path: path}
	return &pass{
		ctx:     ctx,
		id:      id,
		options: f.options,
		logger:  logger,
		report:  r,
		cache:   directive.NewCache(r, logger),
	}
}

// close drops everything the pass cached.
func (p *pass) close() {
	p.cache = nil
}

// hook returns the list hook that reflows every list in file.
func (p *pass) hook(file *syntax.File) printer.ListHook {
	return func(list syntax.List, fragment doc.Doc) (doc.Doc, error) {
		if err := p.ctx.Err(); err != nil {
			return nil, err
		}
		p.lists++

		policy, err := Resolve(p.cache.Table(file), list, file.Lines, p.options)
		if err != nil {
			return nil, err
		}
		if policy.Active(list.Len()) {
			p.reflowed++
		}
		p.logger.Debug("reflowing list",
			"kind", list.Kind,
			"line", list.Line(),
			"elements", list.Len(),
			"pattern", policy.LineCounts,
			"threshold", policy.WrapThreshold,
			"manual", policy.ManualWrap,
		)
		return reflow.Reflow(fragment, list, policy)
	}
}
