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

// DefaultMaxDepth is used by Init when no explicit depth bound is
// configured via InitWithMaxDepth. The reference C implementation
// fixes MAX_DEPTH at compile time; since Go has no preprocessor, this
// port exposes it as a constructor parameter instead without changing
// any observable parsing semantics.
const DefaultMaxDepth = 32

// typeBlock, as an EnsureType argument, means "either OBJECT or
// ARRAY". It is never a value of
// Parser.ValType.
const typeBlock Type = 0xff

// TypeBlock is the EnsureType sentinel meaning "any container" (used
// by GoInto, which accepts either an object or an array).
const TypeBlock = typeBlock

// frame is one entry of the parser's depth stack.
type frame struct {
	kind Type
	name []byte
}

// Parser is a non-recursive, zero-copy, single-pass validator and
// navigator over a caller-owned Binson document. Apart from the depth
// stack allocated once by Init, it does not allocate while parsing;
// all Type-specific getters return either copies of scalars or slices
// into the caller's original buffer.
type Parser struct {
	io  iobuf
	err *CodecError

	state    State
	depth    int
	maxDepth int
	stack    []frame

	valType Type
	valBool bool
	valInt  int64
	valF64  float64
	valBuf  []byte // current string/bytes value (field names are kept in name, not here)

	name []byte // last field name seen in the object active at the current depth

	cb      Callback
	cbParam any
}

// Init associates p with buf using DefaultMaxDepth.
func (p *Parser) Init(buf []byte, size int) {
	p.InitWithMaxDepth(buf, size, DefaultMaxDepth)
}

// InitWithMaxDepth associates p with buf and bounds nesting at maxDepth
// (the array-size analogue of the source's compile-time MAX_DEPTH).
func (p *Parser) InitWithMaxDepth(buf []byte, size int, maxDepth int) {
	p.io.init(buf, size)
	p.maxDepth = maxDepth
	if maxDepth > 0 {
		p.stack = make([]frame, maxDepth+1)
	} else {
		p.stack = nil
	}
	p.reset()
	if buf == nil || len(buf) != size || maxDepth <= 0 {
		p.err = newErr("Init", InvalidArg)
	}
}

// Reset returns p to the state it had immediately after Init.
func (p *Parser) Reset() {
	p.io.used = 0
	p.reset()
}

func (p *Parser) reset() {
	p.err = nil
	p.state = StateUndefined
	p.depth = 0
	p.valType = TypeUnknown
	p.valBuf = nil
	p.name = nil
	for i := range p.stack {
		p.stack[i] = frame{}
	}
	p.cb = nil
	p.cbParam = nil
}

// Err returns the sticky error, or nil if none has occurred.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// Depth returns the current nesting depth (0 at the root, before
// descending into the top-level object).
func (p *Parser) Depth() int { return p.depth }

// ValType reports which member of the value union is meaningful at
// the current position.
func (p *Parser) ValType() Type { return p.valType }

// SetCallback registers cb to be invoked once per scan-loop
// transition, in document order. Pass a nil cb to unregister.
func (p *Parser) SetCallback(cb Callback, param any) {
	p.cb = cb
	p.cbParam = param
}

func (p *Parser) fail(op string, code Code) {
	if p.err == nil {
		p.err = newErr(op, code)
	}
}

func (p *Parser) isObject() bool {
	return p.stack[p.depth].kind == TypeObject
}

// advance is the single scan-loop routine that drives all navigation,
// matching binson_parser_advance in the reference implementation.
//
// itemDepth is the depth at which the items being scanned over (object
// fields or array elements) live, and exitDepth (= itemDepth-1) is the
// depth reached once their enclosing container fully closes. When
// advance is invoked while positioned at a BLOCK that has not yet been
// descended into (state is StateBlock, or StateUndefined at the very
// start of a document), items live one level below the current depth;
// when invoked from inside an already-open container (the normal case
// for FieldEnsure, called after GoIntoObject), items live at the
// current depth itself.
func (p *Parser) advance(op string, flag scanFlag, nSteps int, scanName []byte, ensureType Type) bool {
	origSteps := nSteps
	origDepth := p.depth

	preDescent := p.state == StateBlock || p.state == StateUndefined
	itemDepth := origDepth
	if preDescent {
		itemDepth = origDepth + 1
	}
	exitDepth := itemDepth - 1

	if flag.has(scanCmpName) && p.err != nil && p.err.Code == NoFieldName {
		p.err = nil
	}

	if p.err != nil {
		return false
	}
	if p.depth == 0 && p.state != StateUndefined && p.state != StateBlock {
		p.fail(op, BlockEnded)
		return false
	}
	if flag.has(scanNDepth) && origDepth+origSteps < 0 {
		p.fail(op, InvalidArg)
		return false
	}

	for {
		if p.state != StateName && p.isObject() && flag.has(scanCmpName) && p.depth == itemDepth {
			cmp := cmpNameBytes(p.name, scanName)
			if cmp == 0 {
				return p.ensureFilter(op, flag, ensureType)
			}
			if cmp > 0 {
				p.fail(op, NoFieldName)
				return false
			}
		}

		var req State
		switch p.state {
		case StateBlock:
			req = StateInBlock
		case StateInBlockEnd:
			req = StateBlockEnd
		default:
			req = p.processOne(op)
			if p.err != nil {
				return false
			}
			if p.state == StateName && req != StateVal && req != StateBlock {
				p.fail(op, WrongType)
				return false
			}
		}

		if !legalTransition(p.state, req) {
			p.fail(op, WrongState)
			return false
		}

		if p.cb != nil {
			p.cb(p, req, p.cbParam)
		}

		p.state = req

		switch req {
		case StateInBlock:
			if p.depth+1 >= p.maxDepth {
				p.fail(op, MaxDepthReached)
				return false
			}
			p.stack[p.depth].name = p.name
			p.name = nil
			p.depth++
			p.stack[p.depth].kind = p.valType
		case StateBlockEnd:
			if p.depth == 0 {
				p.fail(op, BlockEnded)
				return false
			}
			p.depth--
			if p.depth == 0 && p.valType != TypeObject {
				p.fail(op, WrongType)
				return false
			}
			p.valType = p.stack[p.depth].kind
			p.name = p.stack[p.depth].name
		}

		// itemComplete fires once per fully-scanned sibling: a scalar
		// landing at itemDepth, a nested container closing back down to
		// itemDepth, or, only for a pre-descent caller such as
		// Verify/GetRaw where the single "item" being scanned is the
		// whole container itself, that container's own closer.
		itemComplete := (p.depth == itemDepth && (req == StateVal || req == StateBlockEnd)) ||
			(preDescent && req == StateBlockEnd && p.depth == exitDepth)
		// containerExhausted fires only for a post-descent caller
		// (already scanning siblings inside a container) once the
		// enclosing container itself closes without enough matching
		// siblings being found.
		containerExhausted := !preDescent && flag.has(scanNSameDepth) && req == StateBlockEnd && p.depth == exitDepth

		// The type filter only ever applies to a fully-read item: a
		// name token (req == StateName) is never the thing ensureType
		// describes, so checking it here on every transition would
		// reject a field whose name simply isn't a string-shaped
		// value. When scanCmpName is set, ensureType describes only
		// the target field's value, not every sibling scanned past
		// while searching for it, so that case is filtered exclusively
		// at the CMP_NAME match return above; everything else is
		// filtered here once its item completes, or once more after
		// the loop exits.
		if itemComplete && !flag.has(scanCmpName) && !p.ensureFilter(op, flag, ensureType) {
			return false
		}

		if flag.has(scanNSameDepth) {
			// A post-descent Next/NextEnsure that reaches its container's
			// closer stops there without error, still inside the
			// container, so GoUp/GoUptoObject/GoUptoArray can leave it.
			if !preDescent && origSteps > 0 && req == StateInBlockEnd && p.depth == itemDepth {
				return false
			}
			if itemComplete && nSteps > 0 {
				nSteps--
			}
			if containerExhausted {
				if flag.has(scanCmpName) {
					p.fail(op, NoFieldName)
				} else if origSteps > 0 {
					p.fail(op, WrongState)
				}
				return false
			}
			if origSteps > 0 && nSteps == 0 && itemComplete {
				break
			}
			if origSteps <= 0 && preDescent && req == StateBlockEnd && p.depth == exitDepth {
				break
			}
		}

		if flag.has(scanNDepth) {
			if origSteps > 0 && p.depth == origDepth+origSteps && p.state == StateInBlock {
				break
			}
			if origSteps < 0 && p.depth == origDepth+origSteps && p.state == StateBlockEnd {
				break
			}
		}
	}

	return p.ensureFilter(op, flag, ensureType)
}

// ensureFilter checks the current value/container type against an
// expected type. It's only meaningful once a full item has actually
// been read (a CMP_NAME match, or itemComplete inside the scan loop,
// or the loop's normal exit): the reference implementation calls the
// equivalent check after every intermediate transition too, but
// discards its return value there and lets the next read overwrite
// the resulting error flag, so in practice it only ever takes effect
// at those same completion points. Calling it unconditionally here
// instead of discarding the result would wrongly compare a name
// token's type against ensureType before the matching value is ever
// read.
func (p *Parser) ensureFilter(op string, flag scanFlag, ensureType Type) bool {
	if ensureType == TypeUnknown || !flag.has(scanEnsureType) {
		return true
	}
	var mismatch bool
	if ensureType == typeBlock {
		mismatch = !isBlockType(p.valType)
	} else {
		mismatch = ensureType != p.valType
	}
	if mismatch {
		// Right after a pop, the container just closed is one frame up.
		if (ensureType == TypeObject || ensureType == TypeArray) && p.state == StateBlockEnd {
			if ensureType == p.stack[p.depth+1].kind {
				return true
			}
		}
		p.fail(op, WrongType)
		return false
	}
	return true
}

// processOne reads and decodes a single wire tag, matching
// _binson_parser_process_one.
func (p *Parser) processOne(op string) State {
	var raw [1]byte
	if code := p.io.read(raw[:], 1); code != OK {
		p.fail(op, code)
		return StateUndefined
	}
	switch tag(raw[0]) {
	case tagObjBegin:
		p.valType = TypeObject
		return StateBlock
	case tagObjEnd:
		p.valType = TypeObject
		return StateInBlockEnd
	case tagArrayBegin:
		p.valType = TypeArray
		return StateBlock
	case tagArrayEnd:
		p.valType = TypeArray
		return StateInBlockEnd
	case tagTrue, tagFalse:
		p.valType = TypeBoolean
		p.valBool = tag(raw[0]) == tagTrue
		return StateVal
	case tagDouble:
		ptr := p.io.ptrAtCursor()
		if code := p.io.advance(8); code != OK {
			p.fail(op, code)
			return StateUndefined
		}
		p.valType = TypeDouble
		p.valF64 = math.Float64frombits(unpackFloatBits(ptr))
		return StateVal
	case tagInteger8, tagInteger16, tagInteger32, tagInteger64:
		size := widthFromIndex(raw[0] & 0x03)
		ptr := p.io.ptrAtCursor()
		if code := p.io.advance(size); code != OK {
			p.fail(op, code)
			return StateUndefined
		}
		val, canonical := unpackInt(ptr, size)
		if !canonical {
			p.fail(op, WrongType)
			return StateUndefined
		}
		p.valType = TypeInteger
		p.valInt = val
		return StateVal
	case tagString8, tagString16, tagString32:
		isFieldName := p.isObject() && p.state != StateName
		prevName := p.name
		width := widthFromIndex(raw[0] & 0x03)
		slice, code := p.processLenVal(op, width)
		if code != OK {
			p.fail(op, code)
			return StateUndefined
		}
		if isFieldName {
			p.name = slice
			if prevName != nil && cmpBytes(prevName, slice) >= 0 {
				p.fail(op, WrongType)
				return StateUndefined
			}
		} else {
			p.valBuf = slice
		}
		p.valType = TypeString
		if isFieldName {
			return StateName
		}
		return StateVal
	case tagBytes8, tagBytes16, tagBytes32:
		width := widthFromIndex(raw[0] & 0x03)
		slice, code := p.processLenVal(op, width)
		if code != OK {
			p.fail(op, code)
			return StateUndefined
		}
		p.valBuf = slice
		p.valType = TypeBytes
		return StateVal
	default:
		p.fail(op, WrongType)
		return StateUndefined
	}
}

// processLenVal reads a length-sizeof-width length prefix followed by
// that many payload bytes, returning a zero-copy slice of the payload.
func (p *Parser) processLenVal(op string, lenWidth int) ([]byte, Code) {
	ptr := p.io.ptrAtCursor()
	if code := p.io.advance(lenWidth); code != OK {
		return nil, code
	}
	length, canonical := unpackInt(ptr, lenWidth)
	_ = canonical // length-prefix width is not required to be canonical; only value-integer tokens enforce minimal width
	if length < 0 || length > math.MaxInt32 {
		return nil, BadLen
	}
	if code := p.io.advance(int(length)); code != OK {
		return nil, code
	}
	payload := ptr[lenWidth : lenWidth+int(length)]
	return payload, OK
}

// cmpBytes is lexicographic byte comparison with shorter-is-smaller on
// equal prefix, like memcmp followed by a length tiebreak.
func cmpBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

// cmpNameBytes returns -1 if name is nil (no name has been seen yet:
// sorts before everything), else cmpBytes(name, target).
func cmpNameBytes(name, target []byte) int {
	if name == nil {
		return -1
	}
	return cmpBytes(name, target)
}

// --- high-level navigation ---

// GoInto descends one level into the current BLOCK (object or array).
func (p *Parser) GoInto() bool {
	return p.advance("GoInto", scanNDepth|scanEnsureType, 1, nil, TypeBlock)
}

// GoIntoObject descends one level, requiring the block be an OBJECT.
func (p *Parser) GoIntoObject() bool {
	return p.advance("GoIntoObject", scanNDepth|scanEnsureType, 1, nil, TypeObject)
}

// GoIntoArray descends one level, requiring the block be an ARRAY.
func (p *Parser) GoIntoArray() bool {
	return p.advance("GoIntoArray", scanNDepth|scanEnsureType, 1, nil, TypeArray)
}

// GoUp ascends one level.
func (p *Parser) GoUp() bool {
	return p.advance("GoUp", scanNDepth, -1, nil, TypeUnknown)
}

// GoUptoObject ascends one level out of the current container and
// fails with WrongType unless that container is an OBJECT. It never
// ascends more than one level.
func (p *Parser) GoUptoObject() bool {
	return p.advance("GoUptoObject", scanNDepth|scanEnsureType, -1, nil, TypeObject)
}

// GoUptoArray ascends one level out of the current container and
// fails with WrongType unless that container is an ARRAY. It never
// ascends more than one level.
func (p *Parser) GoUptoArray() bool {
	return p.advance("GoUptoArray", scanNDepth|scanEnsureType, -1, nil, TypeArray)
}

// Next advances one item at the current depth.
func (p *Parser) Next() bool {
	return p.advance("Next", scanNSameDepth, 1, nil, TypeUnknown)
}

// NextEnsure advances one item at the current depth, requiring its
// type to equal ensureType.
func (p *Parser) NextEnsure(ensureType Type) bool {
	return p.advance("NextEnsure", scanNSameDepth|scanEnsureType, 1, nil, ensureType)
}

// leaveBlock scans to the end of the current container without
// looking for a field. GetRaw does not use it; it skips its subtree
// with NextEnsure.
func (p *Parser) leaveBlock() bool {
	return p.advance("leaveBlock", scanNSameDepth, -1, nil, TypeUnknown)
}

// FieldEnsureWithLen scans the current object, in ascending key order,
// for a field named name whose value has type ensureType.
//
// Callers must probe keys in ascending order: after a failed call
// (NoFieldName), a subsequent call with a later key either succeeds or
// again returns NoFieldName; calling with an earlier key is undefined.
func (p *Parser) FieldEnsureWithLen(name []byte, ensureType Type) bool {
	return p.advance("FieldEnsure", scanNSameDepth|scanCmpName|scanEnsureType, -1, name, ensureType)
}

// FieldEnsure is FieldEnsureWithLen for a Go string key.
func (p *Parser) FieldEnsure(name string, ensureType Type) bool {
	return p.FieldEnsureWithLen([]byte(name), ensureType)
}

// GetRaw must be called while positioned at a BLOCK (just after seeing
// an opener). It returns the contiguous byte range of the whole
// subtree — opener through matching closer — as a zero-copy slice,
// and leaves the parser positioned after the subtree (same depth as
// on entry).
func (p *Parser) GetRaw() ([]byte, bool) {
	if p.err != nil {
		return nil, false
	}
	if p.state != StateBlock {
		p.fail("GetRaw", WrongState)
		return nil, false
	}
	start := p.io.used - 1
	if !p.NextEnsure(TypeUnknown) {
		return nil, false
	}
	return p.io.buf[start:p.io.used], true
}

// ToWriter copies the current subtree (as GetRaw would delimit it)
// verbatim into w.
func (p *Parser) ToWriter(w *Writer) bool {
	raw, ok := p.GetRaw()
	if !ok {
		return false
	}
	w.Raw(raw)
	return w.Err() == nil
}

// Verify performs a full traversal of the document from the current
// position (typically the root, immediately after Init), returning
// true only if every byte forms a well-formed, canonical Binson
// document end to end.
func (p *Parser) Verify() bool {
	return p.advance("Verify", scanNSameDepth, -1, nil, TypeUnknown)
}

// Walk performs a full traversal from the current position, invoking
// cb once per scan-loop transition in document order, then clears the
// callback again regardless of outcome. This is the entry point a
// rendering visitor (e.g. a JSON serializer) should use instead of
// juggling SetCallback and Verify directly.
func (p *Parser) Walk(cb Callback, param any) bool {
	p.SetCallback(cb, param)
	ok := p.Verify()
	p.SetCallback(nil, nil)
	return ok
}

// RawDocument verifies the document from the current position (the
// same entry point as Verify) and, on success, returns the exact
// zero-copy byte range it consumed.
func (p *Parser) RawDocument() ([]byte, bool) {
	start := p.io.used
	if !p.Verify() {
		return nil, false
	}
	return p.io.buf[start:p.io.used], true
}

// --- scalar accessors ---

// GetBoolean returns the current boolean value.
func (p *Parser) GetBoolean() bool { return p.valBool }

// GetInteger returns the current integer value.
func (p *Parser) GetInteger() int64 { return p.valInt }

// GetDouble returns the current double value.
func (p *Parser) GetDouble() float64 { return p.valF64 }

// GetStringBytes returns the current string value as a zero-copy
// slice into the input buffer.
func (p *Parser) GetStringBytes() []byte { return p.valBuf }

// GetString returns the current string value, copied into a Go string.
func (p *Parser) GetString() string { return string(p.valBuf) }

// GetBytesBuf returns the current bytes value as a zero-copy slice
// into the input buffer.
func (p *Parser) GetBytesBuf() []byte { return p.valBuf }

// Name returns the field name most recently read in the object active
// at the current depth, or nil.
func (p *Parser) Name() []byte { return p.name }

// CmpName compares the current field name against name, the way
// strcmp would, returning -1 if no name has been read yet.
func (p *Parser) CmpName(name string) int {
	return cmpNameBytes(p.name, []byte(name))
}

// StringEquals reports whether the current string value equals s.
func (p *Parser) StringEquals(s string) bool {
	return cmpBytes(p.valBuf, []byte(s)) == 0
}
