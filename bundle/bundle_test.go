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

package bundle

import (
	"bytes"
	"testing"

	"github.com/sijohans/binson-go"
)

func doc(t *testing.T, name string, val int64) []byte {
	t.Helper()
	var w binson.Writer
	buf := make([]byte, 64)
	w.Init(buf, len(buf))
	w.ObjectBegin()
	w.Name(name)
	w.Integer(val)
	w.ObjectEnd()
	if w.Err() != nil {
		t.Fatalf("encode: %v", w.Err())
	}
	return buf[:w.BufUsed()]
}

func TestRoundTrip(t *testing.T) {
	docs := [][]byte{
		doc(t, "a", 1),
		doc(t, "b", 2),
		doc(t, "c", 3),
	}

	w := NewWriter()
	for i, d := range docs {
		var p binson.Parser
		p.Init(d, len(d))
		if err := w.Append(&p); err != nil {
			t.Fatalf("Append(%d): %v", i, err)
		}
	}
	if w.Count() != len(docs) {
		t.Fatalf("Count() = %d, want %d", w.Count(), len(docs))
	}

	var out bytes.Buffer
	if err := w.Flush(&out); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	entries, err := ReadAll(&out)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != len(docs) {
		t.Fatalf("got %d entries, want %d", len(entries), len(docs))
	}
	for i, e := range entries {
		if !bytes.Equal(e.Doc, docs[i]) {
			t.Fatalf("entry %d: got % x, want % x", i, e.Doc, docs[i])
		}
	}
}

func TestReadAllRejectsWrongKey(t *testing.T) {
	w := NewWriterWithKey(1, 2)
	d := doc(t, "x", 1)
	var p binson.Parser
	p.Init(d, len(d))
	if err := w.Append(&p); err != nil {
		t.Fatalf("Append: %v", err)
	}
	var out bytes.Buffer
	if err := w.Flush(&out); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := ReadAllWithKey(&out, 3, 4); err == nil {
		t.Fatalf("expected a fingerprint mismatch with the wrong key")
	}
}

func TestAppendRejectsInvalidDocument(t *testing.T) {
	w := NewWriter()
	bad := []byte{0x40, 0x14, 0x01, 'b'} // unterminated object
	var p binson.Parser
	p.Init(bad, len(bad))
	if err := w.Append(&p); err == nil {
		t.Fatalf("expected Append to reject a malformed document")
	}
}
