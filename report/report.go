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

package report

import (
	"fmt"
	"io"
	"strings"
)

// Report is a collection of diagnostics.
//
// The zero value is ready to use. A Report is not safe for concurrent use;
// each formatting pass owns its own.
type Report struct {
	Diagnostics []Diagnostic

	// If set, every diagnostic pushed without an explicit file is attributed
	// to this path.
	Path string
}

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) *Diagnostic {
	d := r.push(err, Error)
	err.Diagnose(d)
	return d
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) *Diagnostic {
	d := r.push(err, Warning)
	err.Diagnose(d)
	return d
}

// Remark pushes a remark diagnostic onto this report.
func (r *Report) Remark(err Diagnose) *Diagnostic {
	d := r.push(err, Remark)
	err.Diagnose(d)
	return d
}

// Errorf creates a new error diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Error)
}

// Warnf creates a new warning diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Warning)
}

// Remarkf creates a new remark diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Remark)
}

// Len returns the number of diagnostics in this report. A nil report has
// none.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Diagnostics)
}

// Count returns the number of diagnostics at the given level.
func (r *Report) Count(level Level) int {
	if r == nil {
		return 0
	}
	var n int
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Level == level {
			n++
		}
	}
	return n
}

// Render writes every diagnostic in this report to w, one per line, in the
// form
//
//	path:line: level: message
//	  note: ...
//	  help: ...
func (r *Report) Render(w io.Writer) error {
	if r == nil {
		return nil
	}
	var out strings.Builder
	for i := range r.Diagnostics {
		d := &r.Diagnostics[i]
		switch {
		case d.InFile != "" && d.Line > 0:
			fmt.Fprintf(&out, "%s:%d: ", d.InFile, d.Line)
		case d.InFile != "":
			fmt.Fprintf(&out, "%s: ", d.InFile)
		}
		fmt.Fprintf(&out, "%v: %s\n", d.Level, d.Message())
		for _, note := range d.Notes {
			fmt.Fprintf(&out, "  note: %s\n", note)
		}
		for _, help := range d.Help {
			fmt.Fprintf(&out, "  help: %s\n", help)
		}
	}
	_, err := io.WriteString(w, out.String())
	return err
}

// push is the core "make me a diagnostic" function.
func (r *Report) push(err error, level Level) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Err:    err,
		Level:  level,
		InFile: r.Path,
	})
	return &r.Diagnostics[len(r.Diagnostics)-1]
}
