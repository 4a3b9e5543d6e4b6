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

import "fmt"

// Code is a sticky error code. Writer and Parser each carry one: once
// set to anything other than OK, every subsequent method on that
// instance is a no-op (Writer) or returns false (Parser) until Reset.
type Code byte

const (
	// OK means no error has occurred.
	OK Code = iota
	// InvalidArg means the caller passed a bad argument: a nil buffer,
	// a buffer whose length differs from the declared size, a
	// non-positive depth limit, or a negative depth request.
	InvalidArg
	// BufFull means the writer ran out of output buffer.
	BufFull
	// EndOfBuffer means the parser tried to read past the input.
	EndOfBuffer
	// WrongType means an unexpected tag byte, a non-canonical integer
	// width, a non-increasing field name, or an EnsureType mismatch.
	WrongType
	// WrongState means the scan loop hit an illegal state transition:
	// the input is structurally corrupt.
	WrongState
	// BadLen means a length prefix was negative or exceeded 2^31-1.
	BadLen
	// MaxDepthReached means nesting exceeded the parser's configured
	// maximum depth.
	MaxDepthReached
	// BlockEnded means advance was attempted past the root object's end.
	BlockEnded
	// NoFieldName means FieldEnsure scanned to the end of the current
	// object without finding the requested key. This is the one code
	// that a subsequent FieldEnsure call clears automatically, so
	// callers may probe successive keys in ascending order.
	NoFieldName
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case InvalidArg:
		return "invalid argument"
	case BufFull:
		return "buffer full"
	case EndOfBuffer:
		return "end of buffer"
	case WrongType:
		return "wrong type"
	case WrongState:
		return "wrong state"
	case BadLen:
		return "bad length"
	case MaxDepthReached:
		return "max depth reached"
	case BlockEnded:
		return "block ended"
	case NoFieldName:
		return "no field name"
	default:
		return "unknown"
	}
}

// CodecError is the error value surfaced by Writer.Err and Parser.Err.
// It names the operation that set the sticky code, mirroring the
// richer *TypeError values a TLV codec's decode helpers return alongside
// its own sentinel errors.
type CodecError struct {
	Code   Code
	Op     string
	Detail string
}

func (e *CodecError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("binson: %s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("binson: %s: %s: %s", e.Op, e.Code, e.Detail)
}

func newErr(op string, code Code) *CodecError {
	return &CodecError{Code: code, Op: op}
}

func newErrf(op string, code Code, format string, args ...any) *CodecError {
	return &CodecError{Code: code, Op: op, Detail: fmt.Sprintf(format, args...)}
}
