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

// tag is a single wire-format byte: either a complete token (OBJ_BEGIN,
// TRUE, ...) or the first byte of a length-prefixed or payload-carrying
// token (INTEGER_8, STRING_16, ...).
type tag byte

// Wire tag assignments. Values are load-bearing: the low two bits of
// the integer/string/bytes tag families select the width of the
// following length or payload field (1 << (tag&3) bytes).
const (
	tagObjBegin   tag = 0x40
	tagObjEnd     tag = 0x41
	tagArrayBegin tag = 0x42
	tagArrayEnd   tag = 0x43
	tagTrue       tag = 0x44
	tagFalse      tag = 0x45
	tagDouble     tag = 0x46

	tagInteger8  tag = 0x10
	tagInteger16 tag = 0x11
	tagInteger32 tag = 0x12
	tagInteger64 tag = 0x13

	tagString8  tag = 0x14
	tagString16 tag = 0x15
	tagString32 tag = 0x16

	tagBytes8  tag = 0x18
	tagBytes16 tag = 0x19
	tagBytes32 tag = 0x1A
)

// widthIndex returns the {0,1,2,3} index used to select among the
// INTEGER_8..INTEGER_64 (or STRING_8..STRING_32, BYTES_8..BYTES_32)
// tag family for a given minimal byte width.
func widthIndex(width int) byte {
	switch width {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		panic("binson: impossible integer width")
	}
}

// widthFromIndex is the inverse of widthIndex, applied to the low two
// bits of a decoded tag byte.
func widthFromIndex(idx byte) int {
	return 1 << (idx & 0x03)
}

// Type identifies which member of the value union a parser position
// currently holds, or which kind of container a frame is.
type Type byte

const (
	// TypeUnknown means no value is currently positioned (e.g. before
	// the first Parser call, or after BlockEnded).
	TypeUnknown Type = iota
	TypeObject
	TypeArray
	TypeBoolean
	TypeInteger
	TypeDouble
	TypeString
	TypeBytes
)

func (t Type) String() string {
	switch t {
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// isBlockType reports whether t names a container (object or array).
func isBlockType(t Type) bool {
	return t == TypeObject || t == TypeArray
}
