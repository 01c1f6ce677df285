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
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks the shape of a completed expression tree: parent
// back-edges must agree with forward edges, argument chains must terminate
// where the bookkeeping says they do, and binary nodes must sit in
// precedence order. Every violation found is reported, combined into one
// error. A None root (empty expression) is valid.
func Validate(p *Pool, root NodeID) error {
	if root == None {
		return nil
	}
	var err error
	if got := p.at(root).parent; got != None {
		err = multierr.Append(err, fmt.Errorf("root node %d has parent %d, want none", root, got))
	}
	return multierr.Append(err, validateNode(p, root))
}

func validateNode(p *Pool, id NodeID) error {
	var err error
	n := p.at(id)

	switch n.kind {
	case Call, List, Subscript, Parenth:
		count := 0
		last := None
		for arg := n.argStart; arg != None; arg = p.at(arg).nextArg {
			err = multierr.Append(err, validateEdge(p, id, arg))
			count++
			last = arg
			if count > p.cursor {
				err = multierr.Append(err, fmt.Errorf("node %d: argument chain does not terminate", id))
				return err
			}
		}
		if count != n.argsCollected {
			err = multierr.Append(err, fmt.Errorf(
				"node %d: args_collected is %d but the chain holds %d", id, n.argsCollected, count))
		}
		if last != n.argTop {
			err = multierr.Append(err, fmt.Errorf(
				"node %d: arg_top is %d but the chain ends at %d", id, n.argTop, last))
		}

	case Unary:
		if n.left != None {
			err = multierr.Append(err, validateEdge(p, id, n.left))
		}

	case Typecast:
		if n.right != None {
			err = multierr.Append(err, validateEdge(p, id, n.right))
		}

	case Binary:
		for _, child := range [...]NodeID{n.left, n.right} {
			if child == None {
				continue
			}
			err = multierr.Append(err, validateEdge(p, id, child))
			if p.at(child).kind == Binary {
				err = multierr.Append(err, validatePriority(p, id, child))
			}
		}
	}

	return err
}

// validateEdge checks the child's back-edge, then recurses.
func validateEdge(p *Pool, parent, child NodeID) error {
	var err error
	if got := p.at(child).parent; got != parent {
		err = fmt.Errorf("node %d: parent is %d but %d references it", child, got, parent)
	}
	return multierr.Append(err, validateNode(p, child))
}

// validatePriority enforces the precedence shape between a binary parent
// and a binary child: the parent runs later, so it binds no tighter. Equal
// priorities lean left, except the right-associative assign family at
// priority 0, which leans right.
func validatePriority(p *Pool, parent, child NodeID) error {
	pn, cn := p.at(parent), p.at(child)
	switch {
	case pn.priority < cn.priority:
		return nil
	case pn.priority == cn.priority && pn.priority != 0 && pn.left == child:
		return nil
	case pn.priority == cn.priority && pn.priority == 0 && pn.right == child:
		return nil
	}
	return fmt.Errorf("node %d (%v, priority %d) misplaced under node %d (%v, priority %d)",
		child, cn.op, cn.priority, parent, pn.op, pn.priority)
}
