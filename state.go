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

// State is one of the seven parser states. It is
// exported so that a registered Callback (and packages built on top,
// such as a JSON visitor) can react to specific transitions.
type State byte

const (
	StateUndefined State = iota
	StateBlock           // just saw a container opener, not yet inside
	StateInBlock         // now inside the container, before first item
	StateInBlockEnd      // just saw a container closer, still counted inside
	StateBlockEnd        // popped: container fully closed
	StateName            // just read a field name, value pending
	StateVal             // just read a scalar value
)

func (s State) String() string {
	switch s {
	case StateUndefined:
		return "undefined"
	case StateBlock:
		return "block"
	case StateInBlock:
		return "in-block"
	case StateInBlockEnd:
		return "in-block-end"
	case StateBlockEnd:
		return "block-end"
	case StateName:
		return "name"
	case StateVal:
		return "val"
	default:
		return "?"
	}
}

// legalTransition implements the state transition table. It is the
// direct analogue of the source's fallthrough chain of bitmask checks,
// expressed as an explicit switch since Go has no bitmask fallthrough
// idiom worth preserving here.
func legalTransition(from, to State) bool {
	switch to {
	case StateName:
		switch from {
		case StateInBlock, StateBlockEnd, StateVal:
			return true
		}
	case StateBlock:
		switch from {
		case StateInBlock, StateBlockEnd, StateVal, StateUndefined, StateName:
			return true
		}
	case StateInBlock:
		return from == StateBlock
	case StateInBlockEnd:
		switch from {
		case StateInBlock, StateBlockEnd, StateVal:
			return true
		}
	case StateBlockEnd:
		return from == StateInBlockEnd
	case StateVal:
		switch from {
		case StateInBlock, StateBlockEnd, StateName, StateVal:
			return true
		}
	case StateUndefined:
		return from == StateBlockEnd
	}
	return false
}

// scanFlag selects the termination condition(s) of the advance loop.
// Flags compose (e.g. N_SAME_DEPTH | CMP_NAME | ENSURE_TYPE for
// FieldEnsure), mirroring the source's bitmask scan_flag parameter.
type scanFlag uint8

const (
	scanN scanFlag = 1 << iota
	scanNSameDepth
	scanNDepth
	scanCmpName
	scanEnsureType
)

func (f scanFlag) has(bit scanFlag) bool { return f&bit != 0 }

// Callback is invoked once per scan-loop transition, in strict
// document order, if registered via Parser.SetCallback.
type Callback func(p *Parser, newState State, param any)
