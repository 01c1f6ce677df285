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

package ast

import (
	"errors"

	"github.com/fenlang/fen/interp/symtab"
)

// ErrNoMemory is the only error the builder reports: the node ceiling was
// reached while growing the pool. The current expression is unusable after
// it; the parser must reset or discard the builder.
var ErrNoMemory = errors.New("ast: node pool exhausted")

// Pool is the arena all nodes of one builder live in. Nodes below the
// cursor are in the current tree; nodes at or past it are free. Expressions
// never retain node references past one build cycle, so reset is a cursor
// rewind and freed nodes keep their storage for the next expression.
type Pool struct {
	nodes  []node
	cursor int
	// limit caps len(nodes); 0 means unbounded. This is where the
	// out-of-memory contract is enforced.
	limit int
}

func newPool(initial int) Pool {
	if initial < 0 {
		initial = 0
	}
	return Pool{nodes: make([]node, initial)}
}

// acquire hands out the next free node, fully re-initialized, growing the
// arena by one when every pooled node is in use. On failure no state
// changes.
func (p *Pool) acquire(k Kind, line int) (NodeID, error) {
	if p.cursor == len(p.nodes) {
		if p.limit > 0 && len(p.nodes) >= p.limit {
			return None, ErrNoMemory
		}
		p.nodes = append(p.nodes, node{})
	}
	id := NodeID(p.cursor)
	p.cursor++
	p.nodes[id].blank(k, line)
	return id, nil
}

// reset frees every in-tree node at once. Fields are not cleared here;
// acquire re-initializes on the way out.
func (p *Pool) reset() {
	p.cursor = 0
}

// Allocated returns how many nodes the arena holds, in-tree or free.
func (p *Pool) Allocated() int { return len(p.nodes) }

// InUse returns how many nodes the current expression holds.
func (p *Pool) InUse() int { return p.cursor }

// at bounds-checks an id for the read accessors below.
func (p *Pool) at(id NodeID) *node {
	if id < 0 || int(id) >= p.cursor {
		panic("ast: NodeID outside the current expression")
	}
	return &p.nodes[id]
}

// want panics unless the node has one of the kinds that define the field
// being read; fields of other kinds are not readable.
func (p *Pool) want(id NodeID, field string, kinds ...Kind) *node {
	n := p.at(id)
	for _, k := range kinds {
		if n.kind == k {
			return n
		}
	}
	panic("ast: " + field + " is not defined for " + n.kind.String() + " nodes")
}

// Kind returns the node's kind tag.
func (p *Pool) Kind(id NodeID) Kind { return p.at(id).kind }

// Line returns the source line recorded when the node was acquired.
func (p *Pool) Line(id NodeID) int { return p.at(id).line }

// Parent returns the node's back-reference, or None at the root.
func (p *Pool) Parent(id NodeID) NodeID { return p.at(id).parent }

// Sym returns the symbol identity of a var or named call.
func (p *Pool) Sym(id NodeID) symtab.SymbolID {
	return p.want(id, "sym", Var, LocalVar, Call).sym
}

// Lit returns the literal identity of a literal leaf.
func (p *Pool) Lit(id NodeID) symtab.LiteralID {
	return p.want(id, "lit", Literal).lit
}

// Sig returns a list's element type or a typecast's target type.
func (p *Pool) Sig(id NodeID) symtab.TypeID {
	return p.want(id, "sig", List, Typecast).sig
}

// OpCode returns the operator of a unary or binary node.
func (p *Pool) OpCode(id NodeID) Op {
	return p.want(id, "op", Unary, Binary).op
}

// Priority returns the precedence of a unary or binary node.
func (p *Pool) Priority(id NodeID) int {
	return p.want(id, "priority", Unary, Binary).priority
}

// Left returns a unary node's operand or a binary node's left side.
func (p *Pool) Left(id NodeID) NodeID {
	return p.want(id, "left", Unary, Binary).left
}

// Right returns a binary node's right side or a typecast's value.
func (p *Pool) Right(id NodeID) NodeID {
	return p.want(id, "right", Binary, Typecast).right
}

// ArgStart returns the first argument of a grouping node, or None.
func (p *Pool) ArgStart(id NodeID) NodeID {
	return p.want(id, "arg_start", Call, List, Subscript, Parenth).argStart
}

// NextArg returns the next link of the enclosing grouping's argument chain.
func (p *Pool) NextArg(id NodeID) NodeID { return p.at(id).nextArg }

// ArgsCollected returns how many arguments a grouping holds.
func (p *Pool) ArgsCollected(id NodeID) int {
	return p.want(id, "args_collected", Call, List, Subscript, Parenth).argsCollected
}
