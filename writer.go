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

import "math"

// Writer accumulates a canonical Binson encoding into a caller-owned
// buffer. All methods are total: once an error occurs, err is set and
// every subsequent method is a no-op. A Writer does not validate
// structural correctness (key order, balance) — Parser is the verifier
// of record; Writer trusts the caller to emit well-formed calls.
//
// Passing a nil buf to Init turns every write into a dry-run: no bytes
// are copied anywhere, but BufUsed still reports the exact byte count
// a real buffer would need.
type Writer struct {
	io  iobuf
	err *CodecError
}

// Init associates w with buf. size is the declared capacity; it must
// equal len(buf) when buf is non-nil, and may be any non-negative
// bound for dry-run sizing when buf is nil.
func (w *Writer) Init(buf []byte, size int) {
	w.io.init(buf, size)
	w.err = nil
	if size < 0 || (buf != nil && len(buf) != size) {
		w.err = newErr("Init", InvalidArg)
	}
}

// Reset returns w to the state it had immediately after Init.
func (w *Writer) Reset() {
	w.io.used = 0
	w.err = nil
}

// Err returns the sticky error, or nil if none has occurred.
func (w *Writer) Err() error {
	if w.err == nil {
		return nil
	}
	return w.err
}

// BufUsed returns the number of bytes written so far (or that would
// have been written, for a dry-run Writer).
func (w *Writer) BufUsed() int { return w.io.used }

func (w *Writer) fail(op string, code Code) {
	if w.err == nil {
		w.err = newErr(op, code)
	}
}

func (w *Writer) ok() bool { return w.err == nil }

func (w *Writer) writeSimple(op string, t tag) {
	if !w.ok() {
		return
	}
	if code := w.io.writeByte(byte(t)); code != OK {
		w.fail(op, code)
	}
}

// ObjectBegin writes the '{' token.
func (w *Writer) ObjectBegin() { w.writeSimple("ObjectBegin", tagObjBegin) }

// ObjectEnd writes the '}' token.
func (w *Writer) ObjectEnd() { w.writeSimple("ObjectEnd", tagObjEnd) }

// ArrayBegin writes the '[' token.
func (w *Writer) ArrayBegin() { w.writeSimple("ArrayBegin", tagArrayBegin) }

// ArrayEnd writes the ']' token.
func (w *Writer) ArrayEnd() { w.writeSimple("ArrayEnd", tagArrayEnd) }

// Boolean writes a boolean value token.
func (w *Writer) Boolean(b bool) {
	if b {
		w.writeSimple("Boolean", tagTrue)
	} else {
		w.writeSimple("Boolean", tagFalse)
	}
}

// Integer writes a signed 64-bit integer using the minimum canonical
// width.
func (w *Writer) Integer(val int64) {
	if !w.ok() {
		return
	}
	var scratch [9]byte
	width := packInt(val, scratch[1:])
	scratch[0] = byte(tagInteger8) + widthIndex(width)
	if code := w.io.write(scratch[:width+1], width+1); code != OK {
		w.fail("Integer", code)
	}
}

// Double writes an IEEE-754 binary64 value, 8 little-endian bytes.
func (w *Writer) Double(val float64) {
	if !w.ok() {
		return
	}
	var scratch [9]byte
	scratch[0] = byte(tagDouble)
	packFloatBits(math.Float64bits(val), scratch[1:])
	if code := w.io.write(scratch[:9], 9); code != OK {
		w.fail("Double", code)
	}
}

// lenToken writes the integer-encoded length for a string/bytes/name
// token, reusing the integer packing path with the given tag family
// base (STRING_8 or BYTES_8), exactly as the source's
// _binson_writer_write_token composes BINSON_ID_STRING_LEN /
// BINSON_ID_BYTES_LEN.
func (w *Writer) lenToken(op string, base tag, length int) {
	if !w.ok() {
		return
	}
	var scratch [9]byte
	width := packInt(int64(length), scratch[1:])
	scratch[0] = byte(base) + widthIndex(width)
	if code := w.io.write(scratch[:width+1], width+1); code != OK {
		w.fail(op, code)
	}
}

// NameWithLen writes a field name of a pending OBJECT item.
func (w *Writer) NameWithLen(p []byte) {
	w.lenToken("Name", tagString8, len(p))
	if !w.ok() {
		return
	}
	if code := w.io.write(p, len(p)); code != OK {
		w.fail("Name", code)
	}
}

// Name writes a field name of a pending OBJECT item.
func (w *Writer) Name(s string) { w.NameWithLen([]byte(s)) }

// StringWithLen writes a UTF-8 string value of the given byte length.
func (w *Writer) StringWithLen(p []byte) {
	w.lenToken("String", tagString8, len(p))
	if !w.ok() {
		return
	}
	if code := w.io.write(p, len(p)); code != OK {
		w.fail("String", code)
	}
}

// String writes a UTF-8 string value.
func (w *Writer) String(s string) { w.StringWithLen([]byte(s)) }

// Bytes writes a raw byte blob.
func (w *Writer) Bytes(p []byte) {
	w.lenToken("Bytes", tagBytes8, len(p))
	if !w.ok() {
		return
	}
	if code := w.io.write(p, len(p)); code != OK {
		w.fail("Bytes", code)
	}
}

// Raw injects an already-encoded subtree verbatim, e.g. a slice
// produced by Parser.GetRaw.
func (w *Writer) Raw(p []byte) {
	if !w.ok() {
		return
	}
	if code := w.io.write(p, len(p)); code != OK {
		w.fail("Raw", code)
	}
}
