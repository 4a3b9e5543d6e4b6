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

// Package bundle stores a sequence of Binson documents as a single
// zstd-compressed stream, each entry prefixed with its uncompressed
// length and a fingerprint tag, so each entry can be delimited and
// verified on its own. Reading decompresses the whole archive at once;
// there is no random access to a single entry.
//
// The on-disk layout of one entry, before compression, is:
//
//	uvarint(len(doc))  fingerprint.Tag(8 bytes)  doc bytes
//
// Entries are concatenated and the whole concatenation is zstd
// compressed as a single frame; Writer buffers entries in memory and
// Flush produces the final frame, the same magic-prefixed,
// single-frame shape used elsewhere for streams of encoded chunks
// rather than compressing each chunk independently.
package bundle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/sijohans/binson-go"
	"github.com/sijohans/binson-go/fingerprint"
)

// magic identifies a binson bundle stream, analogous to zion's 4-byte
// marker ahead of its compressed chunks.
var magic = []byte{'b', 's', 'o', 'n'}

// HashKey0 and HashKey1 are the default SipHash key halves used to
// fingerprint entries when NewWriter or ReadAll is used without
// explicit keys. Callers that need collision resistance against an
// adversarial input source should supply their own key via
// NewWriterWithKey / ReadAllWithKey instead.
const (
	HashKey0 uint64 = 0x62696e736f6e676f
	HashKey1 uint64 = 0x2062756e646c6521
)

// Writer accumulates Binson documents and flushes them as one
// zstd-compressed bundle.
type Writer struct {
	k0, k1 uint64
	raw    bytes.Buffer
	count  int
}

// NewWriter returns a Writer using the package default fingerprint key.
func NewWriter() *Writer { return NewWriterWithKey(HashKey0, HashKey1) }

// NewWriterWithKey returns a Writer that fingerprints entries under
// the given SipHash key.
func NewWriterWithKey(k0, k1 uint64) *Writer {
	return &Writer{k0: k0, k1: k1}
}

// Append validates doc as a single well-formed Binson document and
// adds it to the bundle. The Parser must be freshly Init'd over doc
// (or positioned such that RawDocument would consume it in full).
func (bw *Writer) Append(p *binson.Parser) error {
	raw, ok := p.RawDocument()
	if !ok {
		return fmt.Errorf("bundle: invalid entry: %w", p.Err())
	}
	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(len(raw)))
	bw.raw.Write(hdr[:n])
	fp := fingerprint.OfBytes(raw, bw.k0, bw.k1)
	bw.raw.Write(fingerprint.AppendTag(nil, fp))
	bw.raw.Write(raw)
	bw.count++
	return nil
}

// Count returns the number of entries appended so far.
func (bw *Writer) Count() int { return bw.count }

// Flush compresses the accumulated entries into a single zstd frame
// and writes it, preceded by the bundle magic, to w.
func (bw *Writer) Flush(w io.Writer) error {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	defer enc.Close()
	compressed := enc.EncodeAll(bw.raw.Bytes(), nil)
	if _, err := w.Write(magic); err != nil {
		return err
	}
	_, err = w.Write(compressed)
	return err
}

// Entry is one decoded, fingerprint-verified bundle member.
type Entry struct {
	Doc         []byte
	Fingerprint uint64
}

// ReadAll decompresses and decodes every entry in a bundle previously
// produced by Writer.Flush, verifying each entry's stored fingerprint
// against a freshly computed one.
func ReadAll(r io.Reader) ([]Entry, error) {
	return ReadAllWithKey(r, HashKey0, HashKey1)
}

// ReadAllWithKey is ReadAll using an explicit SipHash key; it must
// match the key the bundle was written with, or every fingerprint
// check will fail.
func ReadAllWithKey(r io.Reader, k0, k1 uint64) ([]Entry, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(all) < len(magic) || !bytes.Equal(all[:len(magic)], magic) {
		return nil, fmt.Errorf("bundle: missing magic header")
	}
	dec, err := zstd.NewReader(nil, zstd.IgnoreChecksum(true))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(all[len(magic):], nil)
	if err != nil {
		return nil, fmt.Errorf("bundle: decompress: %w", err)
	}

	var entries []Entry
	for len(raw) > 0 {
		docLen, n := binary.Uvarint(raw)
		if n <= 0 {
			return nil, fmt.Errorf("bundle: corrupt entry length prefix")
		}
		raw = raw[n:]
		if len(raw) < 8 {
			return nil, fmt.Errorf("bundle: truncated fingerprint tag")
		}
		tag := fingerprint.ReadTag(raw)
		raw = raw[8:]
		if uint64(len(raw)) < docLen {
			return nil, fmt.Errorf("bundle: truncated entry body")
		}
		doc := raw[:docLen]
		raw = raw[docLen:]

		var p binson.Parser
		p.Init(doc, len(doc))
		verified, ok := p.RawDocument()
		if !ok || len(verified) != len(doc) {
			return nil, fmt.Errorf("bundle: entry failed to validate: %v", p.Err())
		}
		got := fingerprint.OfBytes(doc, k0, k1)
		if got != tag {
			return nil, fmt.Errorf("bundle: fingerprint mismatch: stored %x, computed %x", tag, got)
		}
		entries = append(entries, Entry{Doc: doc, Fingerprint: got})
	}
	return entries, nil
}
