// Copyright (C) 2026 The binson-go Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package binsonjson renders a Binson document as compact JSON.
//
// It drives Parser.Walk, Binson's push-style transition callback, so
// the whole document is rendered in a single forward pass with no
// intermediate tree: every OBJECT becomes a JSON object, every ARRAY a
// JSON array, and integers/doubles/strings/booleans map onto their
// natural JSON counterparts. Binson's BYTES type has no JSON
// equivalent and is rendered as the literal string "<data>", matching
// the reference implementation's own to-string behavior.
package binsonjson

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/sijohans/binson-go"
)

// Write renders the document at p's current position (normally right
// after Init, with nothing parsed yet) as JSON, writing directly to w.
//
// Binson's BYTES type has no JSON equivalent; rather than invent a
// binary-to-text convention this package never asked for, a bytes
// value is rendered as the literal string "<data>", matching the
// reference implementation's own WITH_TO_STRING behavior.
func Write(w io.Writer, p *binson.Parser) error {
	v := &visitor{w: w}
	ok := p.Walk(v.onTransition, nil)
	if v.err != nil {
		return v.err
	}
	if !ok {
		return p.Err()
	}
	return nil
}

// frame tracks whether the container currently being rendered is an
// array (which needs bare commas between elements) or an object
// (whose commas are emitted alongside field names instead).
type frame struct {
	isArray bool
	first   bool
}

type visitor struct {
	w     io.Writer
	err   error
	stack []frame
	buf   []byte
}

func (v *visitor) writeString(s string) {
	if v.err != nil {
		return
	}
	_, v.err = io.WriteString(v.w, s)
}

func (v *visitor) writeBytes(b []byte) {
	if v.err != nil {
		return
	}
	_, v.err = v.w.Write(b)
}

func (v *visitor) top() *frame {
	if len(v.stack) == 0 {
		return nil
	}
	return &v.stack[len(v.stack)-1]
}

// beforeArrayElement emits the comma separating this element from the
// previous one, if any. Object field separators are instead handled
// in onTransition's StateName case, since the comma there precedes
// the field's name rather than its value.
func (v *visitor) beforeArrayElement() {
	f := v.top()
	if f == nil || !f.isArray {
		return
	}
	if !f.first {
		v.writeString(",")
	}
	f.first = false
}

func (v *visitor) onTransition(p *binson.Parser, newState binson.State, _ any) {
	if v.err != nil {
		return
	}
	switch newState {
	case binson.StateName:
		f := v.top()
		if f != nil {
			if !f.first {
				v.writeString(",")
			}
			f.first = false
		}
		v.buf = quote(v.buf[:0], p.Name())
		v.writeBytes(v.buf)
		v.writeString(":")
	case binson.StateBlock:
		v.beforeArrayElement()
		if p.ValType() == binson.TypeArray {
			v.writeString("[")
		} else {
			v.writeString("{")
		}
	case binson.StateInBlock:
		v.stack = append(v.stack, frame{isArray: p.ValType() == binson.TypeArray, first: true})
	case binson.StateBlockEnd:
		if len(v.stack) > 0 {
			v.stack = v.stack[:len(v.stack)-1]
		}
		if p.ValType() == binson.TypeArray {
			v.writeString("]")
		} else {
			v.writeString("}")
		}
	case binson.StateVal:
		v.beforeArrayElement()
		v.writeValue(p)
	}
}

func (v *visitor) writeValue(p *binson.Parser) {
	switch p.ValType() {
	case binson.TypeBoolean:
		if p.GetBoolean() {
			v.writeString("true")
		} else {
			v.writeString("false")
		}
	case binson.TypeInteger:
		v.writeString(strconv.FormatInt(p.GetInteger(), 10))
	case binson.TypeDouble:
		v.writeString(formatDouble(p.GetDouble()))
	case binson.TypeString:
		v.buf = quote(v.buf[:0], p.GetStringBytes())
		v.writeBytes(v.buf)
	case binson.TypeBytes:
		v.writeString(`"<data>"`)
	default:
		v.err = fmt.Errorf("binsonjson: unrenderable value type %s", p.ValType())
	}
}

func formatDouble(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
