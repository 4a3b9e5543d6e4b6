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

// Package fingerprint computes a keyed 64-bit content hash of a
// Binson document, suitable for deduplicating documents in a bundle
// or detecting accidental corruption in storage. Because the wire
// format is canonical (sorted keys, minimum-width integers), two
// documents with identical logical content always encode to identical
// bytes, so hashing the raw wire bytes is sufficient: no separate
// "semantic equality" comparator is needed.
package fingerprint

import (
	"encoding/binary"

	"github.com/dchest/siphash"

	"github.com/sijohans/binson-go"
)

// Of verifies and fingerprints the document at p's current position,
// returning the 64-bit SipHash-2-4 digest of its canonical wire
// encoding under key (k0, k1).
func Of(p *binson.Parser, k0, k1 uint64) (uint64, error) {
	raw, ok := p.RawDocument()
	if !ok {
		return 0, p.Err()
	}
	return siphash.Hash(k0, k1, raw), nil
}

// OfBytes fingerprints buf directly, without validating that it is a
// well-formed Binson document. Callers that already trust buf (e.g.
// bytes previously accepted by Of or read back from a bundle whose
// entries were verified at write time) can skip the re-parse.
func OfBytes(buf []byte, k0, k1 uint64) uint64 {
	return siphash.Hash(k0, k1, buf)
}

// AppendTag appends the 8-byte little-endian encoding of a fingerprint
// to dst, the layout used by package bundle to store an entry's
// fingerprint alongside its length-prefixed bytes.
func AppendTag(dst []byte, fp uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], fp)
	return append(dst, tmp[:]...)
}

// ReadTag reads an 8-byte little-endian fingerprint tag previously
// appended by AppendTag.
func ReadTag(src []byte) uint64 {
	return binary.LittleEndian.Uint64(src)
}
