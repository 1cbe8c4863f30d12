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

package doc

import (
	"fmt"
	"strings"
)

// Debug formats d in a compact, builder-like notation, for use in error
// messages and test failures. For example:
//
//	group(["[", indent([softline, "1"]), if-break(","), softline, "]"])
func Debug(d Doc) string {
	var out strings.Builder
	debug(&out, d)
	return out.String()
}

func debug(out *strings.Builder, d Doc) {
	switch d := d.(type) {
	case nil:
		out.WriteString("nil")
	case *Text:
		fmt.Fprintf(out, "%q", d.Value)
	case *Line:
		switch {
		case d.Hard:
			out.WriteString("hardline")
		case d.Soft:
			out.WriteString("softline")
		default:
			out.WriteString("line")
		}
	case *BreakParent:
		out.WriteString("break-parent")
	case *Concat:
		out.WriteByte('[')
		for i, part := range d.Parts {
			if i > 0 {
				out.WriteString(", ")
			}
			debug(out, part)
		}
		out.WriteByte(']')
	case *Indent:
		out.WriteString("indent(")
		debug(out, d.Contents)
		out.WriteByte(')')
	case *Align:
		fmt.Fprintf(out, "align(%q, ", d.By)
		debug(out, d.Contents)
		out.WriteByte(')')
	case *Group:
		if d.Break {
			out.WriteString("group!(")
		} else {
			out.WriteString("group(")
		}
		debug(out, d.Contents)
		out.WriteByte(')')
	case *LineSuffix:
		out.WriteString("line-suffix(")
		debug(out, d.Contents)
		out.WriteByte(')')
	case *IfBreak:
		out.WriteString("if-break(")
		debug(out, d.Break)
		if d.Flat != nil {
			out.WriteString(", ")
			debug(out, d.Flat)
		}
		out.WriteByte(')')
	}
}
