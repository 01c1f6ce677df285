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
	"strings"

	"github.com/fenlang/fen/interp/symtab"
)

// Namer resolves the opaque identities leaf nodes carry back to printable
// names. symtab.Table satisfies it; the ast package itself never looks
// inside an id.
type Namer interface {
	SymbolName(symtab.SymbolID) string
	LiteralName(symtab.LiteralID) string
	TypeName(symtab.TypeID) string
}

// Sexpr renders a completed tree as an s-expression, e.g. "(+ 5 (* 6 7))".
// Meant for tests and debugging output, not for the emitter.
func Sexpr(p *Pool, names Namer, id NodeID) string {
	var sb strings.Builder
	writeSexpr(&sb, p, names, id)
	return sb.String()
}

func writeSexpr(sb *strings.Builder, p *Pool, names Namer, id NodeID) {
	if id == None {
		sb.WriteString("_")
		return
	}
	n := p.at(id)
	switch n.kind {
	case Var, LocalVar:
		sb.WriteString(names.SymbolName(n.sym))

	case Literal:
		sb.WriteString(names.LiteralName(n.lit))

	case Call:
		sb.WriteString("(call")
		if n.sym != symtab.NoSymbol {
			sb.WriteString(" ")
			sb.WriteString(names.SymbolName(n.sym))
		}
		writeArgs(sb, p, names, n.argStart)
		sb.WriteString(")")

	case List:
		sb.WriteString("(list")
		if n.sig != symtab.NoType {
			sb.WriteString(":")
			sb.WriteString(names.TypeName(n.sig))
		}
		writeArgs(sb, p, names, n.argStart)
		sb.WriteString(")")

	case Subscript:
		sb.WriteString("(subscript")
		writeArgs(sb, p, names, n.argStart)
		sb.WriteString(")")

	case Parenth:
		sb.WriteString("(parenth")
		writeArgs(sb, p, names, n.argStart)
		sb.WriteString(")")

	case Unary:
		sb.WriteString("(")
		sb.WriteString(n.op.String())
		sb.WriteString(" ")
		writeSexpr(sb, p, names, n.left)
		sb.WriteString(")")

	case Typecast:
		sb.WriteString("(cast ")
		sb.WriteString(names.TypeName(n.sig))
		sb.WriteString(" ")
		writeSexpr(sb, p, names, n.right)
		sb.WriteString(")")

	case Binary:
		sb.WriteString("(")
		sb.WriteString(n.op.String())
		sb.WriteString(" ")
		writeSexpr(sb, p, names, n.left)
		sb.WriteString(" ")
		writeSexpr(sb, p, names, n.right)
		sb.WriteString(")")
	}
}

func writeArgs(sb *strings.Builder, p *Pool, names Namer, arg NodeID) {
	for ; arg != None; arg = p.at(arg).nextArg {
		sb.WriteString(" ")
		writeSexpr(sb, p, names, arg)
	}
}
