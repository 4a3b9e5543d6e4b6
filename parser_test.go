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

package binson

import "testing"

func TestParserEmptyObject(t *testing.T) {
	buf := []byte{0x40, 0x41}
	var p Parser
	p.Init(buf, len(buf))
	if !p.GoIntoObject() {
		t.Fatalf("GoIntoObject: %v", p.Err())
	}
	if p.Next() {
		t.Fatalf("Next on empty object should return false")
	}
	if !p.GoUptoObject() {
		t.Fatalf("GoUptoObject: %v", p.Err())
	}
}

func TestParserSingleSmallInteger(t *testing.T) {
	// {"": 17218}
	buf := []byte{0x40, 0x14, 0x00, 0x11, 0x42, 0x43, 0x41}
	var p Parser
	p.Init(buf, len(buf))
	if !p.GoIntoObject() {
		t.Fatalf("GoIntoObject: %v", p.Err())
	}
	if !p.NextEnsure(TypeInteger) {
		t.Fatalf("NextEnsure: %v", p.Err())
	}
	if got := p.GetInteger(); got != 17218 {
		t.Fatalf("GetInteger() = %d, want 17218", got)
	}
	if name := p.Name(); string(name) != "" {
		t.Fatalf("Name() = %q, want empty", name)
	}
}

func TestParserFieldEnsureOrderedLookup(t *testing.T) {
	var w Writer
	buf := make([]byte, 256)
	w.Init(buf, len(buf))
	w.ObjectBegin()
	w.Name("")
	w.String("a")
	w.Name("mid")
	w.String("b")
	w.Name("zzz")
	w.String("c")
	w.ObjectEnd()
	if w.Err() != nil {
		t.Fatalf("write: %v", w.Err())
	}

	var p Parser
	p.Init(buf[:w.BufUsed()], w.BufUsed())
	if !p.GoIntoObject() {
		t.Fatalf("GoIntoObject: %v", p.Err())
	}
	if !p.FieldEnsure("", TypeString) || p.GetString() != "a" {
		t.Fatalf("field %q: %v, val=%q", "", p.Err(), p.GetString())
	}
	if !p.FieldEnsure("mid", TypeString) || p.GetString() != "b" {
		t.Fatalf("field %q: %v, val=%q", "mid", p.Err(), p.GetString())
	}
	if !p.FieldEnsure("zzz", TypeString) || p.GetString() != "c" {
		t.Fatalf("field %q: %v, val=%q", "zzz", p.Err(), p.GetString())
	}
	if p.Next() {
		t.Fatalf("Next after last field should return false")
	}
	if !p.GoUptoObject() {
		t.Fatalf("GoUptoObject: %v", p.Err())
	}
}

func TestParserFieldEnsureMissingKey(t *testing.T) {
	var w Writer
	buf := make([]byte, 64)
	w.Init(buf, len(buf))
	w.ObjectBegin()
	w.Name("b")
	w.Integer(1)
	w.ObjectEnd()

	var p Parser
	p.Init(buf[:w.BufUsed()], w.BufUsed())
	p.GoIntoObject()
	if p.FieldEnsure("a", TypeInteger) {
		t.Fatalf("expected missing key to fail")
	}
	if err, ok := p.Err().(*CodecError); !ok || err.Code != NoFieldName {
		t.Fatalf("Err() = %v, want NoFieldName", p.Err())
	}
	// A later key retried from the same position clears NoFieldName
	// automatically and succeeds.
	if !p.FieldEnsure("b", TypeInteger) || p.GetInteger() != 1 {
		t.Fatalf("retry with later key: %v", p.Err())
	}
}

func TestParserMalformedNonCanonicalInteger(t *testing.T) {
	// OBJ_BEGIN, name "" , INTEGER_64 tag whose payload (16) fits in a
	// single byte, OBJ_END.
	buf := []byte{
		0x40,
		0x14, 0x00,
		0x13, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x41,
	}
	var p Parser
	p.Init(buf, len(buf))
	p.GoIntoObject()
	if p.NextEnsure(TypeInteger) {
		t.Fatalf("non-canonical integer width must be rejected")
	}
	if err, ok := p.Err().(*CodecError); !ok || err.Code != WrongType {
		t.Fatalf("Err() = %v, want WrongType", p.Err())
	}
}

func TestParserOutOfOrderKeysRejected(t *testing.T) {
	// {"b": "x", "a": "y"} — keys are not strictly increasing.
	buf := []byte{
		0x40,
		0x14, 0x01, 'b', 0x14, 0x01, 'x',
		0x14, 0x01, 'a', 0x14, 0x01, 'y',
		0x41,
	}
	var p Parser
	p.Init(buf, len(buf))
	if !p.GoIntoObject() {
		t.Fatalf("GoIntoObject: %v", p.Err())
	}
	if p.Verify() {
		t.Fatalf("out-of-order keys must be rejected")
	}
	if err, ok := p.Err().(*CodecError); !ok || err.Code != WrongType {
		t.Fatalf("Err() = %v, want WrongType", p.Err())
	}
}

func TestParserNestedArrayRoundTrip(t *testing.T) {
	var w Writer
	buf := make([]byte, 256)
	w.Init(buf, len(buf))
	w.ObjectBegin()
	w.Name("")
	w.ArrayBegin()
	w.ObjectBegin()
	w.ObjectEnd()
	w.Integer(16)
	w.Integer(303174162)
	w.ArrayEnd()
	w.ObjectEnd()
	if w.Err() != nil {
		t.Fatalf("write: %v", w.Err())
	}

	var p Parser
	p.Init(buf[:w.BufUsed()], w.BufUsed())
	if !p.GoIntoObject() {
		t.Fatalf("GoIntoObject: %v", p.Err())
	}
	if !p.FieldEnsure("", TypeArray) {
		t.Fatalf("FieldEnsure(array): %v", p.Err())
	}
	if !p.GoIntoArray() {
		t.Fatalf("GoIntoArray: %v", p.Err())
	}
	if !p.NextEnsure(TypeObject) {
		t.Fatalf("NextEnsure(object) for empty nested object: %v", p.Err())
	}
	if !p.NextEnsure(TypeInteger) || p.GetInteger() != 16 {
		t.Fatalf("NextEnsure(16): %v, got %d", p.Err(), p.GetInteger())
	}
	if !p.NextEnsure(TypeInteger) || p.GetInteger() != 303174162 {
		t.Fatalf("NextEnsure(303174162): %v, got %d", p.Err(), p.GetInteger())
	}
	if p.Next() {
		t.Fatalf("Next past end of array should return false")
	}
	if !p.GoUptoArray() {
		t.Fatalf("GoUptoArray: %v", p.Err())
	}
	if !p.GoUptoObject() {
		t.Fatalf("GoUptoObject: %v", p.Err())
	}
}

func TestParserGetRawAndToWriter(t *testing.T) {
	var w Writer
	buf := make([]byte, 128)
	w.Init(buf, len(buf))
	w.ObjectBegin()
	w.Name("sub")
	w.ObjectBegin()
	w.Name("x")
	w.Integer(7)
	w.ObjectEnd()
	w.ObjectEnd()

	var p Parser
	p.Init(buf[:w.BufUsed()], w.BufUsed())
	p.GoIntoObject()
	if !p.FieldEnsure("sub", TypeBlock) {
		t.Fatalf("FieldEnsure(sub): %v", p.Err())
	}
	raw, ok := p.GetRaw()
	if !ok {
		t.Fatalf("GetRaw: %v", p.Err())
	}

	var out Writer
	outBuf := make([]byte, 64)
	out.Init(outBuf, len(outBuf))
	out.Raw(raw)
	if out.Err() != nil {
		t.Fatalf("write raw: %v", out.Err())
	}

	var q Parser
	q.Init(outBuf[:out.BufUsed()], out.BufUsed())
	if !q.GoIntoObject() || !q.FieldEnsure("x", TypeInteger) || q.GetInteger() != 7 {
		t.Fatalf("round-tripped subtree did not parse back correctly: %v", q.Err())
	}
}

func TestParserMaxDepth(t *testing.T) {
	var w Writer
	buf := make([]byte, 64)
	w.Init(buf, len(buf))
	w.ObjectBegin()
	w.Name("n")
	w.ObjectBegin()
	w.Name("n")
	w.ObjectBegin()
	w.Name("n")
	w.Integer(1)
	w.ObjectEnd()
	w.ObjectEnd()
	w.ObjectEnd()
	if w.Err() != nil {
		t.Fatalf("write: %v", w.Err())
	}

	var p Parser
	p.InitWithMaxDepth(buf[:w.BufUsed()], w.BufUsed(), 3)
	if !p.GoIntoObject() {
		t.Fatalf("GoIntoObject depth1: %v", p.Err())
	}
	if !p.FieldEnsure("n", TypeBlock) {
		t.Fatalf("FieldEnsure depth1: %v", p.Err())
	}
	if !p.GoIntoObject() {
		t.Fatalf("GoIntoObject depth2: %v", p.Err())
	}
	if !p.FieldEnsure("n", TypeBlock) {
		t.Fatalf("FieldEnsure depth2: %v", p.Err())
	}
	if p.GoIntoObject() {
		t.Fatalf("GoIntoObject depth3 should fail: max depth is 3")
	}
	if err, ok := p.Err().(*CodecError); !ok || err.Code != MaxDepthReached {
		t.Fatalf("Err() = %v, want MaxDepthReached", p.Err())
	}
}

func TestParserTruncatedBuffer(t *testing.T) {
	full := []byte{0x40, 0x14, 0x00, 0x11, 0x42, 0x43, 0x41}
	for n := 0; n < len(full); n++ {
		var p Parser
		p.Init(full[:n], n)
		if p.Verify() {
			t.Fatalf("truncated prefix of length %d unexpectedly verified", n)
		}
		if p.Err() == nil {
			t.Fatalf("truncated prefix of length %d left no error set", n)
		}
	}
}
