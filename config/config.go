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

// Package config is the configuration surface of the formatter.
//
// Options arrive as loosely typed key-value pairs, from a config file,
// command-line flags, or a caller. [Decode] validates each one; an invalid
// value is reported as a warning and replaced with that option's default,
// so that a bad option never stops formatting.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/directive"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/doc"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/report"
)

// Option names, as they appear in config files.
const (
	KeyWrapThreshold     = "wrapThreshold"
	KeyLinePattern       = "linePattern"
	KeyWrapArgumentLists = "wrapArgumentLists"
	KeyPrintWidth        = "printWidth"
	KeyTabWidth          = "tabWidth"
	KeyUseTabs           = "useTabs"
	KeyTrailingComma     = "trailingComma"
)

// TrailingComma is where the printer puts a comma after the last element of
// a list that is broken across lines.
type TrailingComma string

const (
	TrailingCommaAll  TrailingComma = "all"
	TrailingCommaES5  TrailingComma = "es5"
	TrailingCommaNone TrailingComma = "none"
)

// Arrays reports whether broken arrays get a trailing comma.
func (t TrailingComma) Arrays() bool {
	return t == TrailingCommaAll || t == TrailingCommaES5
}

// Arguments reports whether broken argument and parameter lists get a
// trailing comma.
func (t TrailingComma) Arguments() bool {
	return t == TrailingCommaAll
}

// Options is the complete formatter configuration.
type Options struct {
	// Lists with at most this many elements stay on one line. Negative
	// means never wrap because of the element count.
	WrapThreshold int `json:"wrapThreshold" yaml:"wrapThreshold" toml:"wrapThreshold"`

	// The number of elements on each line of a wrapped list, cycled.
	LinePattern []int `json:"linePattern" yaml:"linePattern" toml:"linePattern"`

	// If set, argument and parameter lists are reflowed too, not only
	// arrays.
	WrapArgumentLists bool `json:"wrapArgumentLists" yaml:"wrapArgumentLists" toml:"wrapArgumentLists"`

	PrintWidth    int           `json:"printWidth" yaml:"printWidth" toml:"printWidth"`
	TabWidth      int           `json:"tabWidth" yaml:"tabWidth" toml:"tabWidth"`
	UseTabs       bool          `json:"useTabs" yaml:"useTabs" toml:"useTabs"`
	TrailingComma TrailingComma `json:"trailingComma" yaml:"trailingComma" toml:"trailingComma"`
}

// Defaults returns the default options.
func Defaults() Options {
	return Options{
		WrapThreshold: 0,
		PrintWidth:    80,
		TabWidth:      2,
		TrailingComma: TrailingCommaAll,
	}
}

// Threshold returns the configured wrap threshold.
func (o Options) Threshold() directive.Threshold {
	return directive.ThresholdOf(o.WrapThreshold)
}

// DocOptions returns the rendering options implied by o.
func (o Options) DocOptions() doc.Options {
	return doc.Options{
		MaxWidth: o.PrintWidth,
		TabWidth: o.TabWidth,
		UseTabs:  o.UseTabs,
	}
}

// InvalidValueError is an option value of the wrong type or out of range.
type InvalidValueError struct {
	Option   string
	Expected string
	Received any
}

// Error implements [error].
func (e *InvalidValueError) Error() string {
	received, err := json.Marshal(e.Received)
	if err != nil {
		received, _ = json.Marshal(fmt.Sprint(e.Received))
	}
	return fmt.Sprintf("Invalid %s value. Expected %s, but received %s.", e.Option, e.Expected, received)
}

// Diagnose implements [report.Diagnose].
func (e *InvalidValueError) Diagnose(d *report.Diagnostic) {
	d.With(report.Note("the default value of %s is used instead", e.Option))
}

// Decode validates raw option values on top of [Defaults].
//
// Keys are matched case-insensitively, since some loaders fold them. Every
// invalid value is pushed to r as a warning, and every unknown key as a
// remark. r may be nil.
func Decode(raw map[string]any, r *report.Report) Options {
	d := decoder{report: r, raw: make(map[string]any, len(raw))}
	for key, value := range raw {
		d.raw[strings.ToLower(key)] = value
	}

	opts := Defaults()
	d.int(KeyWrapThreshold, "an integer", math.MinInt, &opts.WrapThreshold)
	d.pattern(KeyLinePattern, &opts.LinePattern)
	d.bool(KeyWrapArgumentLists, &opts.WrapArgumentLists)
	d.int(KeyPrintWidth, "a positive integer", 1, &opts.PrintWidth)
	d.int(KeyTabWidth, "a positive integer", 1, &opts.TabWidth)
	d.bool(KeyUseTabs, &opts.UseTabs)
	d.trailingComma(&opts.TrailingComma)

	if r != nil && len(d.raw) > 0 {
		unknown := make([]string, 0, len(d.raw))
		for key := range d.raw {
			unknown = append(unknown, key)
		}
		slices.Sort(unknown)
		for _, key := range unknown {
			r.Remarkf("unknown option %q", key)
		}
	}
	return opts
}

// decoder consumes raw values one option at a time. Whatever is left in raw
// afterwards is unknown.
type decoder struct {
	report *report.Report
	raw    map[string]any
}

func (d *decoder) take(key string) (any, bool) {
	key = strings.ToLower(key)
	value, ok := d.raw[key]
	delete(d.raw, key)
	return value, ok && value != nil
}

func (d *decoder) invalid(key, expected string, received any) {
	if d.report != nil {
		d.report.Warn(&InvalidValueError{Option: key, Expected: expected, Received: received})
	}
}

func (d *decoder) int(key, expected string, least int, out *int) {
	value, ok := d.take(key)
	if !ok {
		return
	}
	n, ok := asInt(value)
	if !ok || n < least {
		d.invalid(key, expected, value)
		return
	}
	*out = n
}

func (d *decoder) bool(key string, out *bool) {
	value, ok := d.take(key)
	if !ok {
		return
	}
	b, ok := value.(bool)
	if !ok {
		d.invalid(key, "a boolean", value)
		return
	}
	*out = b
}

func (d *decoder) pattern(key string, out *[]int) {
	const expected = "a list of positive integers"

	value, ok := d.take(key)
	if !ok {
		return
	}

	var items []any
	switch v := value.(type) {
	case string:
		for _, field := range strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		}) {
			items = append(items, field)
		}
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			d.invalid(key, expected, value)
			return
		}
		for i := range rv.Len() {
			items = append(items, rv.Index(i).Interface())
		}
	}

	pattern := make([]int, 0, len(items))
	for _, item := range items {
		var (
			n  int
			ok bool
		)
		if s, isString := item.(string); isString {
			var err error
			n, err = strconv.Atoi(s)
			ok = err == nil
		} else {
			n, ok = asInt(item)
		}
		if !ok || n <= 0 {
			d.invalid(key, expected, value)
			return
		}
		pattern = append(pattern, n)
	}
	if len(pattern) > 0 {
		*out = pattern
	}
}

func (d *decoder) trailingComma(out *TrailingComma) {
	value, ok := d.take(KeyTrailingComma)
	if !ok {
		return
	}
	s, _ := value.(string)
	switch t := TrailingComma(strings.ToLower(s)); t {
	case TrailingCommaAll, TrailingCommaES5, TrailingCommaNone:
		*out = t
	default:
		d.invalid(KeyTrailingComma, `"all", "es5" or "none"`, value)
	}
}

// asInt converts any integral number to an int. Config decoders disagree
// on numeric types: JSON produces float64, TOML int64, and YAML int.
func asInt(value any) (int, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt || f > math.MaxInt {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}
