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

import "github.com/fenlang/fen/interp/symtab"

// ErrorSink receives the builder's only error kind, ErrNoMemory, at the
// moment it occurs. The failing operation also returns the error.
type ErrorSink func(error)

// LineSource reports the line the lexer is currently on; each node records
// it at acquisition time.
type LineSource func() int

// saveFrame is pushed when the parser enters a grouping tree. outerRoot
// restores the root on leave; enter is the grouping node receiving
// arguments; returnTo is the node that was active at the moment of
// attachment and becomes active again on leave, so the builder knows what
// the grouping's value returns into.
type saveFrame struct {
	outerRoot NodeID
	enter     NodeID
	returnTo  NodeID
}

// Builder assembles one expression tree at a time. The parser drives it
// token by token: values and operators merge into the tree as they arrive,
// with no look-ahead, and the finished tree is read from Root. A Builder is
// owned by one parser and is not safe for concurrent use.
type Builder struct {
	pool Pool

	// root is the topmost node of the expression being built; active is
	// the node the next merge applies to.
	root   NodeID
	active NodeID

	saved []saveFrame

	sink ErrorSink
	line LineSource
}

// New creates a builder with initialPoolSize nodes pre-allocated. sink and
// line may be nil; a nil line source records line 0.
func New(initialPoolSize int, sink ErrorSink, line LineSource) *Builder {
	return &Builder{
		pool:   newPool(initialPoolSize),
		root:   None,
		active: None,
		saved:  make([]saveFrame, 0, 4),
		sink:   sink,
		line:   line,
	}
}

// SetNodeLimit caps the pool at n nodes (0 removes the cap). Exceeding the
// cap is the builder's out-of-memory condition.
func (b *Builder) SetNodeLimit(n int) {
	b.pool.limit = n
}

// Pool exposes the node arena for the emitter's read access.
func (b *Builder) Pool() *Pool { return &b.pool }

// Root returns the finished expression tree, or None if nothing has merged
// since the last Reset.
func (b *Builder) Root() NodeID { return b.root }

// Depth returns how many grouping trees are currently open. The parser uses
// this to detect an expression ending inside a subtree.
func (b *Builder) Depth() int { return len(b.saved) }

// Reset recycles every node and clears all tree state for the next
// expression. The previous tree must not be read afterwards.
func (b *Builder) Reset() {
	b.pool.reset()
	b.root = None
	b.active = None
	b.saved = b.saved[:0]
}

func (b *Builder) lineNum() int {
	if b.line == nil {
		return 0
	}
	return b.line()
}

// newNode acquires a blank node of the given kind, reporting pool
// exhaustion through the sink.
func (b *Builder) newNode(k Kind) (NodeID, error) {
	id, err := b.pool.acquire(k, b.lineNum())
	if err != nil {
		if b.sink != nil {
			b.sink(err)
		}
		return None, err
	}
	return id, nil
}

// PushSym merges a global var leaf. Globals are separated from local vars
// because they need to be loaded into a register before use.
func (b *Builder) PushSym(sym symtab.SymbolID) error {
	id, err := b.newNode(Var)
	if err != nil {
		return err
	}
	b.pool.nodes[id].sym = sym
	b.mergeValue(id)
	return nil
}

// PushLocalVar merges a local var leaf. Locals already have a register
// allocated; the distinct kind lets the emitter do a no-op load for them.
func (b *Builder) PushLocalVar(sym symtab.SymbolID) error {
	id, err := b.newNode(LocalVar)
	if err != nil {
		return err
	}
	b.pool.nodes[id].sym = sym
	b.mergeValue(id)
	return nil
}

// PushLiteral merges a literal leaf.
func (b *Builder) PushLiteral(lit symtab.LiteralID) error {
	id, err := b.newNode(Literal)
	if err != nil {
		return err
	}
	b.pool.nodes[id].lit = lit
	b.mergeValue(id)
	return nil
}

// PushSig merges a typecast tree holding a target type. The value lands in
// right later, which lets typecast share code with binary trees.
func (b *Builder) PushSig(sig symtab.TypeID) error {
	id, err := b.newNode(Typecast)
	if err != nil {
		return err
	}
	b.pool.nodes[id].sig = sig
	b.mergeValue(id)
	return nil
}

// PushEmptyList merges a list tree with no inner values and a default
// element type. This is simpler than the enter/leave pair an empty list
// would otherwise need.
func (b *Builder) PushEmptyList(elem symtab.TypeID) error {
	id, err := b.newNode(List)
	if err != nil {
		return err
	}
	b.pool.nodes[id].sig = elem
	b.mergeValue(id)
	return nil
}

// PushUnaryOp merges a unary operator against the active tree.
func (b *Builder) PushUnaryOp(op Op) error {
	id, err := b.newNode(Unary)
	if err != nil {
		return err
	}
	n := &b.pool.nodes[id]
	n.op = op
	n.priority = priorityFor(op)

	active := b.active
	if active == None {
		b.root = id
		b.active = id
		return nil
	}
	switch b.pool.nodes[active].kind {
	case Var, LocalVar, Call, Literal:
		// A unary op arriving on top of a finished simple value takes over
		// both handles. List, Parenth, Subscript, and Typecast instead fall
		// through to the unary merge.
		b.pool.nodes[active].parent = id
		b.root = id
		b.active = id
	default:
		b.mergeUnary(active, id)
	}
	return nil
}

// PushBinaryOp merges a binary operator against the active tree, splicing
// it into the precedence order. Active is always non-empty here: a binary
// op only ever follows a value.
func (b *Builder) PushBinaryOp(op Op) error {
	id, err := b.newNode(Binary)
	if err != nil {
		return err
	}
	n := &b.pool.nodes[id]
	n.op = op
	n.priority = priorityFor(op)
	b.mergeBinary(id)
	return nil
}

// EnterTree begins a grouping tree that takes comma-separated arguments:
// a call, list literal, subscript, or parenthesized expression. sym names
// the callee and only applies to Call; pass symtab.NoSymbol otherwise. The
// sub-expression that follows builds against fresh root/active handles
// until the matching LeaveTree.
func (b *Builder) EnterTree(kind Kind, sym symtab.SymbolID) error {
	id, err := b.newNode(kind)
	if err != nil {
		return err
	}
	if kind == Call {
		b.pool.nodes[id].sym = sym
	}
	b.mergeValue(id)

	// The frame remembers the current active as the grouping's return
	// target; when the grouping became active itself, leaving makes it
	// active again. Its parent field holds only its structural parent, so
	// the emitter sees from it whether the call's value is consumed.
	b.saved = append(b.saved, saveFrame{outerRoot: b.root, enter: id, returnTo: b.active})
	b.root = None
	b.active = None
	return nil
}

// CollectArg appends the current root to the innermost grouping's argument
// list and clears root/active so the next argument builds independently.
func (b *Builder) CollectArg() error {
	g := b.saved[len(b.saved)-1].enter
	b.pushTreeArg(g, b.root)
	b.root = None
	b.active = None
	return nil
}

// LeaveTree closes the innermost grouping: the current root becomes its
// final argument, the outer root is restored, and active returns to the
// node the grouping merged into.
func (b *Builder) LeaveTree() error {
	frame := b.saved[len(b.saved)-1]
	b.saved = b.saved[:len(b.saved)-1]

	g := frame.enter
	b.pushTreeArg(g, b.root)
	b.root = frame.outerRoot
	b.active = frame.returnTo
	return nil
}

// CallerTreeType returns the kind of the grouping currently receiving
// arguments, so the parser can insist on the matching closing token.
func (b *Builder) CallerTreeType() Kind {
	g := b.saved[len(b.saved)-1].enter
	return b.pool.nodes[g].kind
}

// pushTreeArg links tree onto the grouping's argument chain. A nil tree
// comes from a zero-argument call and leaves the chain untouched.
func (b *Builder) pushTreeArg(g, tree NodeID) {
	if tree == None {
		return
	}
	gn := &b.pool.nodes[g]
	if gn.argStart == None {
		gn.argStart = tree
		gn.argTop = tree
	} else {
		b.pool.nodes[gn.argTop].nextArg = tree
		gn.argTop = tree
	}
	if tree != None {
		b.pool.nodes[tree].parent = g
		b.pool.nodes[tree].nextArg = None
		gn.argsCollected++
	}
}
