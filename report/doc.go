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

// Package report provides a diagnostics channel for problems found while
// formatting.
//
// Diagnostics are not Go errors in the usual sense: a [Report] collects
// warnings about user input (a bad configuration value, a malformed comment
// directive) which the formatter recovers from by falling back to a default.
// Fatal problems are returned as plain errors instead.
package report
