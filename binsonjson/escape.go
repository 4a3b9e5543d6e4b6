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

import "unicode/utf8"

const hex = "0123456789abcdef"

// safeASCII[b] is true for bytes below utf8.RuneSelf that may be
// copied into a JSON string literal unescaped.
var safeASCII = [utf8.RuneSelf]bool{}

func init() {
	for b := 0x20; b < utf8.RuneSelf; b++ {
		safeASCII[b] = true
	}
	safeASCII['"'] = false
	safeASCII['\\'] = false
}

// quote appends a JSON-quoted rendering of in to dst and returns the
// result, escaping control characters, the quote and backslash
// characters, and invalid UTF-8 the way encoding/json does.
func quote(dst []byte, in []byte) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(in); {
		b := in[i]
		if b < utf8.RuneSelf {
			if safeASCII[b] {
				i++
				continue
			}
			if start < i {
				dst = append(dst, in[start:i]...)
			}
			switch b {
			case '\\', '"':
				dst = append(dst, '\\', b)
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				dst = append(dst, '\\', 'u', '0', '0', hex[b>>4], hex[b&0xf])
			}
			i++
			start = i
			continue
		}
		c, size := utf8.DecodeRune(in[i:])
		if c == utf8.RuneError && size == 1 {
			if start < i {
				dst = append(dst, in[start:i]...)
			}
			dst = append(dst, '\\', 'u', 'f', 'f', 'f', 'd')
			i += size
			start = i
			continue
		}
		i += size
	}
	if start < len(in) {
		dst = append(dst, in[start:]...)
	}
	return append(dst, '"')
}
