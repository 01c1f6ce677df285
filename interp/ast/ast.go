//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ast assembles one expression tree at a time from the builder
// calls the parser makes while scanning tokens. Every tree position is one
// uniform node held in an arena; the parser hands the finished root to the
// emitter and resets the arena for the next expression. The package does no
// syntax validation: the parser is expected to call the operations in a
// well-formed order.
package ast

import (
	"fmt"

	"github.com/fenlang/fen/interp/symtab"
)

// NodeID is an index into the builder's node arena. Trees link to each
// other through NodeIDs rather than pointers so that recycling the arena
// between expressions is a cursor reset.
type NodeID int32

// None is the empty child/parent/argument sentinel.
const None NodeID = -1

// Kind tags what a node represents. The declaration order is the node rank
// the merge engine compares: everything below Unary is a value, Typecast and
// Binary defer their right side, and Binary ranks last.
type Kind int

const (
	// Var is a global var or other symbol that must be loaded into a
	// register before use.
	Var Kind = iota
	// LocalVar is a var that already has a register allocated, so the
	// emitter can do a no-op load for it.
	LocalVar
	// Literal is an interned literal value.
	Literal
	// Call is a call tree. Its first argument is the callee's receiver when
	// the call was written in dot form.
	Call
	// List is a list literal. An empty list carries a default element type
	// instead of arguments.
	List
	// Subscript is an index tree; the subscripted value is its first
	// argument.
	Subscript
	// Parenth wraps a parenthesized sub-expression as a single argument.
	Parenth
	// Unary is a unary operator. Operand in left; chains right-to-left.
	Unary
	// Typecast holds a target type and casts the value in right.
	Typecast
	// Binary is a binary operator with left, right, and a priority used by
	// the precedence climb.
	Binary
)

var kindNames = [...]string{
	Var:       "var",
	LocalVar:  "local_var",
	Literal:   "literal",
	Call:      "call",
	List:      "list",
	Subscript: "subscript",
	Parenth:   "parenth",
	Unary:     "unary",
	Typecast:  "typecast",
	Binary:    "binary",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// isValue reports whether a node of this kind is complete as soon as it is
// merged: a leaf or a grouping. Unary, Typecast, and Binary are not values
// because they still wait on an operand.
func (k Kind) isValue() bool {
	return k < Unary
}

// deferredRight reports whether nodes of this kind hold their operand in
// right and may receive it after the node itself was merged.
func (k Kind) deferredRight() bool {
	return k == Typecast || k == Binary
}

// node is the uniform tree record. Which fields are meaningful depends on
// kind; acquire zeroes every field so stale values never leak between
// expressions.
type node struct {
	kind Kind
	line int

	// Leaf and named-call identity.
	sym symtab.SymbolID
	lit symtab.LiteralID

	// List element type or typecast target.
	sig symtab.TypeID

	// Operator trees.
	op       Op
	priority int
	left     NodeID
	right    NodeID

	// Grouping argument chain, in parser-emitted order.
	argStart      NodeID
	argTop        NodeID
	nextArg       NodeID
	argsCollected int

	// Back-reference kept in agreement with the forward edges; the
	// precedence climb walks it upward.
	parent NodeID
}

// blank resets a record for reuse.
func (n *node) blank(k Kind, line int) {
	*n = node{
		kind:     k,
		line:     line,
		sym:      symtab.NoSymbol,
		lit:      symtab.NoLiteral,
		sig:      symtab.NoType,
		left:     None,
		right:    None,
		argStart: None,
		argTop:   None,
		nextArg:  None,
		parent:   None,
	}
}
