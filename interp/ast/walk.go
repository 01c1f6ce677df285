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

// Visitor is the interface emitter-side walkers implement. Pre runs before
// a node's children are traversed and Post after; returning an error from
// either stops the walk.
type Visitor interface {
	Pre(NodeID) error
	Post(NodeID) error
}

// Walk traverses a completed expression tree in evaluation order: children
// bottom-up, arguments left to right. The input id must not be None; child
// slots are guarded here so that a tree still carrying empty slots (a
// half-built expression) walks without tripping on the sentinel.
func Walk(p *Pool, v Visitor, id NodeID) error {
	if err := v.Pre(id); err != nil {
		return err
	}

	n := p.at(id)
	switch n.kind {
	case Var, LocalVar, Literal:
		// Leaves carry only an identity.

	case Call, List, Subscript, Parenth:
		for arg := n.argStart; arg != None; arg = p.at(arg).nextArg {
			if err := Walk(p, v, arg); err != nil {
				return err
			}
		}

	case Unary:
		if n.left != None {
			if err := Walk(p, v, n.left); err != nil {
				return err
			}
		}

	case Typecast:
		if n.right != None {
			if err := Walk(p, v, n.right); err != nil {
				return err
			}
		}

	case Binary:
		if n.left != None {
			if err := Walk(p, v, n.left); err != nil {
				return err
			}
		}
		if n.right != None {
			if err := Walk(p, v, n.right); err != nil {
				return err
			}
		}
	}

	return v.Post(id)
}
