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

// Package binson implements a streaming, allocation-free codec for
// Binson, a compact, deterministic, canonically-ordered binary format.
//
// A Writer accumulates a canonical encoding into a caller-supplied byte
// slice (or sizes a document with a nil slice). A Parser drives a
// non-recursive state machine over a caller-supplied slice, validating
// strict canonical form (sorted object keys, minimal integer width,
// balanced nesting) as it goes and exposing zero-copy slices for
// strings and byte blobs.
//
// Neither type allocates while encoding or parsing (a Parser allocates
// its fixed-size depth stack once, in Init), and neither retains a
// reference past the lifetime of the caller's buffer. Neither type is safe for concurrent
// use by multiple goroutines without external synchronization.
package binson
