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

// The merge engine. Evaluation order is bottom-up and left-to-right, so
// parents sit higher in the tree and run later. Three protocols cover every
// arrival: values fill a waiting operand slot or get absorbed, unary ops
// chain right-to-left under one shared priority, and binary ops climb the
// parent links until the precedence order is restored.

// mergeValue merges a value-ish node: a leaf, a grouping, an empty list, or
// a typecast awaiting its operand.
func (b *Builder) mergeValue(n NodeID) {
	a := b.active
	if a == None {
		// No value or call so far. Become root, if only temporarily.
		if b.root == None {
			b.root = n
		}
		b.active = n
		return
	}

	nodes := b.pool.nodes
	switch {
	case nodes[a].kind.deferredRight():
		// A typecast parked on the rhs never becomes active, so its waiting
		// operand slot is only reachable by walking the right edges down to
		// the lowest deferred-right tree.
		for nodes[a].right != None && nodes[nodes[a].right].kind.deferredRight() {
			a = nodes[a].right
		}
		switch {
		case nodes[a].right == None:
			nodes[a].right = n
			nodes[n].parent = a
		case nodes[nodes[a].right].kind == Unary:
			b.mergeUnary(a, n)
		default:
			b.mergeAbsorb(a, n)
		}
	case nodes[a].kind == Unary:
		b.mergeUnary(a, n)
	default:
		// Merging a call against an existing value is an o-o call; the
		// same absorption covers subscripts and list builds.
		b.mergeAbsorb(a, n)
	}
}

// mergeUnary merges n against an active unary chain starting at a. Unary
// ops run right-to-left and share one priority, so an arriving operand
// walks down to the lowest unary tree. The walk stops at that tree rather
// than the value under it, because its left slot may still need to be
// overwritten below.
func (b *Builder) mergeUnary(a, n NodeID) {
	nodes := b.pool.nodes
	if nodes[a].kind.deferredRight() && nodes[a].right == None {
		// "x = " or "@(type: ": no value on the right side yet.
		nodes[a].right = n
	} else {
		if nodes[a].kind.deferredRight() {
			a = nodes[a].right
		}
		for nodes[a].kind == Unary && nodes[a].left != None &&
			nodes[nodes[a].left].kind == Unary {
			a = nodes[a].left
		}

		if nodes[a].left == None {
			nodes[a].left = n
		} else if nodes[n].kind == Subscript {
			// A subscript comes after the operand and swallows it as the
			// first arg, then stands in for it under the unary tree.
			b.mergeAbsorb(nodes[a].left, n)
			nodes[a].left = n
		}
	}
	nodes[n].parent = a
}

// mergeAbsorb rewrites the tree at a to become the first argument of the
// grouping n. This turns a.concat("b") into concat(a, "b"), and the same
// move serves list builds and subscripts.
func (b *Builder) mergeAbsorb(a, n NodeID) {
	nodes := b.pool.nodes
	var target NodeID
	if nodes[a].kind.isValue() {
		// Swallow the whole value. The grouping takes over the active
		// handle too; otherwise EnterTree would record the value as the
		// return target and make it active again when the grouping is done.
		if b.root == a {
			b.root = n
		}
		b.active = n
		target = a
	} else {
		// a is a binary or typecast, so the absorption is against its
		// right side, the same slot values add to. The grouping cannot
		// become root or active: the binary keeps priority over it.
		target = nodes[a].right
		nodes[a].right = n
		nodes[n].parent = a
	}

	nodes[target].parent = n
	nodes[n].argStart = target
	nodes[n].argTop = target
	nodes[n].argsCollected = 1
	nodes[n].nextArg = None
}

// mergeBinary splices the freshly made binary node n into the tree around
// the active node.
func (b *Builder) mergeBinary(n NodeID) {
	nodes := b.pool.nodes
	a := b.active

	if nodes[a].kind != Binary {
		// Only a value, unary, or typecast so far; the binary op takes it
		// whole as the left side.
		nodes[n].left = a
		nodes[a].parent = n
		if b.root == a {
			b.root = n
		}
		b.active = n
		return
	}

	newPrio := nodes[n].priority
	activePrio := nodes[a].priority
	if newPrio > activePrio || newPrio == 0 {
		// The new op binds tighter, so it steals the right side and takes
		// its place; it still needs a right of its own, so it becomes
		// active. newPrio == 0 keeps the assign family right-to-left.
		stolen := nodes[a].right
		nodes[n].left = stolen
		if stolen != None {
			nodes[stolen].parent = n
		}
		nodes[a].right = n
		nodes[n].parent = a
		b.active = n
		return
	}

	// The new op goes above the active one, and above every ancestor whose
	// priority is at least its own (newPrio <= rather than <, so equal ops
	// run left-to-right).
	t := a
	for nodes[t].parent != None && newPrio <= nodes[nodes[t].parent].priority {
		t = nodes[t].parent
	}
	if p := nodes[t].parent; p != None {
		// Linked-list insertion between t and its parent.
		if nodes[p].left == t {
			nodes[p].left = n
		} else {
			nodes[p].right = n
		}
		nodes[n].parent = p
	} else {
		// t was the root.
		b.root = n
	}
	nodes[n].left = t
	nodes[t].parent = n
	b.active = n
}
