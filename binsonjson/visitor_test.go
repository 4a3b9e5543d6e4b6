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

package binsonjson

import (
	"bytes"
	"testing"

	"github.com/sijohans/binson-go"
)

func encode(t *testing.T, build func(w *binson.Writer)) []byte {
	t.Helper()
	var w binson.Writer
	buf := make([]byte, 512)
	w.Init(buf, len(buf))
	build(&w)
	if w.Err() != nil {
		t.Fatalf("build: %v", w.Err())
	}
	return buf[:w.BufUsed()]
}

func TestWriteSimpleObject(t *testing.T) {
	doc := encode(t, func(w *binson.Writer) {
		w.ObjectBegin()
		w.Name("a")
		w.Integer(1)
		w.Name("b")
		w.Boolean(true)
		w.Name("c")
		w.String("hi")
		w.ObjectEnd()
	})

	var p binson.Parser
	p.Init(doc, len(doc))

	var buf bytes.Buffer
	if err := Write(&buf, &p); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{"a":1,"b":true,"c":"hi"}`
	if got := buf.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestWriteNestedArray(t *testing.T) {
	doc := encode(t, func(w *binson.Writer) {
		w.ObjectBegin()
		w.Name("items")
		w.ArrayBegin()
		w.Integer(1)
		w.Integer(2)
		w.ObjectBegin()
		w.Name("x")
		w.Integer(3)
		w.ObjectEnd()
		w.ArrayEnd()
		w.ObjectEnd()
	})

	var p binson.Parser
	p.Init(doc, len(doc))

	var buf bytes.Buffer
	if err := Write(&buf, &p); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{"items":[1,2,{"x":3}]}`
	if got := buf.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestWriteEscapesStrings(t *testing.T) {
	doc := encode(t, func(w *binson.Writer) {
		w.ObjectBegin()
		w.Name("s")
		w.String("a\"b\\c\nd")
		w.ObjectEnd()
	})

	var p binson.Parser
	p.Init(doc, len(doc))

	var buf bytes.Buffer
	if err := Write(&buf, &p); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{"s":"a\"b\\c\nd"}`
	if got := buf.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestWriteBytesAsDataPlaceholder(t *testing.T) {
	doc := encode(t, func(w *binson.Writer) {
		w.ObjectBegin()
		w.Name("b")
		w.Bytes([]byte{0xde, 0xad, 0xbe, 0xef})
		w.ObjectEnd()
	})

	var p binson.Parser
	p.Init(doc, len(doc))

	var buf bytes.Buffer
	if err := Write(&buf, &p); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{"b":"<data>"}`
	if got := buf.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
