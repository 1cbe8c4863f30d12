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
)

const (
	// Error indicates a problem that stopped some output from being produced.
	Error Level = 1 + iota
	// Warning indicates a problem that was recovered from by substituting a
	// default.
	Warning
	// Remark is the diagnostics version of "info".
	Remark
)

// Level represents the severity of a diagnostic message.
type Level int8

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	default:
		return fmt.Sprintf("Level(%d)", int8(l))
	}
}

// Diagnose is an error that can be rendered as a diagnostic.
type Diagnose interface {
	error

	// Diagnose writes out this error to the given diagnostic.
	//
	// This function should not set Level nor Err; those are set by the
	// diagnostics framework.
	Diagnose(*Diagnostic)
}

// Diagnostic is a single problem recorded in a [Report].
//
// Not all Diagnostics are "errors", even though Diagnostic carries an error;
// most of them are warnings about input that was replaced with a default.
type Diagnostic struct {
	// The error that prompted this diagnostic. Its Error() return is used
	// as the diagnostic message.
	Err error

	// The kind of diagnostic this is.
	Level Level

	// The file this diagnostic occurs in, if known.
	InFile string

	// The 1-indexed line this diagnostic refers to. Zero means unknown.
	Line int

	// Notes and help messages to include after the message.
	Notes, Help []string
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
type DiagnosticOption func(*Diagnostic)

// Message returns the main message of this diagnostic.
func (d *Diagnostic) Message() string {
	if d.Err == nil {
		return ""
	}
	return d.Err.Error()
}

// With applies the given options to this diagnostic.
//
// Nil options are ignored.
func (d *Diagnostic) With(options ...DiagnosticOption) *Diagnostic {
	for _, option := range options {
		if option != nil {
			option(d)
		}
	}
	return d
}

// InFile returns a DiagnosticOption that attributes a diagnostic to the
// given file.
func InFile(path string) DiagnosticOption {
	return func(d *Diagnostic) { d.InFile = path }
}

// AtLine returns a DiagnosticOption that attributes a diagnostic to the
// given 1-indexed line.
func AtLine(line int) DiagnosticOption {
	return func(d *Diagnostic) { d.Line = line }
}

// Note returns a DiagnosticOption that provides the user with context about
// the diagnostic.
func Note(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	}
}

// Help returns a DiagnosticOption that provides the user with a helpful
// prose suggestion for resolving the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Help = append(d.Help, fmt.Sprintf(format, args...))
	}
}
