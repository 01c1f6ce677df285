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

// Package symtab holds the symbol, literal, and class tables for the
// interpreter front-end. The expression builder stores the ids issued here
// in its leaf nodes and never looks inside them; the emitter resolves them
// back through this package when it loads registers.
package symtab

// TypeID identifies a class (a built-in type) in the table.
type TypeID int32

// SymbolID identifies a declared var, global or local.
type SymbolID int32

// LiteralID identifies an interned literal value.
type LiteralID int32

// Sentinel ids for "no identity attached".
const (
	NoType    TypeID    = -1
	NoSymbol  SymbolID  = -1
	NoLiteral LiteralID = -1
)

// Built-in class ids. These are fixed: the seed table below registers them
// in this order at construction.
const (
	ClassInteger TypeID = iota
	ClassNumber
	ClassStr
	ClassFunction
)

// classSeeds names the built-in classes, indexed by TypeID.
var classSeeds = [...]string{"integer", "number", "str", "function"}

type variable struct {
	name  string
	class TypeID
	local bool
}

type literal struct {
	class TypeID
	text  string
}

type litKey struct {
	class TypeID
	text  string
}

// Table is the symbol table for one interpreter instance. Ids it issues are
// dense and increase in declaration order, so the emitter can use them as
// indices. The zero value is not usable; call New.
type Table struct {
	classes []string
	vars    []variable
	lits    []literal
	litIdx  map[litKey]LiteralID
}

// New creates a table with the built-in classes registered.
func New() *Table {
	t := &Table{
		classes: make([]string, 0, len(classSeeds)),
		litIdx:  make(map[litKey]LiteralID),
	}
	for _, name := range classSeeds {
		t.classes = append(t.classes, name)
	}
	return t
}

// ClassByName returns the id of the named class.
func (t *Table) ClassByName(name string) (TypeID, bool) {
	for i, n := range t.classes {
		if n == name {
			return TypeID(i), true
		}
	}
	return NoType, false
}

// TypeName returns the name of a class.
func (t *Table) TypeName(id TypeID) string {
	return t.classes[id]
}

// DeclareGlobal appends a global var and returns its id.
func (t *Table) DeclareGlobal(name string, class TypeID) SymbolID {
	t.vars = append(t.vars, variable{name: name, class: class})
	return SymbolID(len(t.vars) - 1)
}

// DeclareLocal appends a local var and returns its id. Locals already have a
// register, so the builder caller marks them with a distinct node kind.
func (t *Table) DeclareLocal(name string, class TypeID) SymbolID {
	t.vars = append(t.vars, variable{name: name, class: class, local: true})
	return SymbolID(len(t.vars) - 1)
}

// VarByName finds the newest var with the given name, so later declarations
// shadow earlier ones.
func (t *Table) VarByName(name string) (SymbolID, bool) {
	for i := len(t.vars) - 1; i >= 0; i-- {
		if t.vars[i].name == name {
			return SymbolID(i), true
		}
	}
	return NoSymbol, false
}

// IsLocal reports whether the var was declared local.
func (t *Table) IsLocal(id SymbolID) bool {
	return t.vars[id].local
}

// SymbolName returns the declared name of a var.
func (t *Table) SymbolName(id SymbolID) string {
	return t.vars[id].name
}

// SymbolClass returns the class a var was declared with.
func (t *Table) SymbolClass(id SymbolID) TypeID {
	return t.vars[id].class
}

// InternLiteral returns the id for a literal of the given class and source
// text, adding it on first sight. Repeats of the same literal share one id,
// so the emitter loads each distinct literal once.
func (t *Table) InternLiteral(class TypeID, text string) LiteralID {
	key := litKey{class: class, text: text}
	if id, ok := t.litIdx[key]; ok {
		return id
	}
	t.lits = append(t.lits, literal{class: class, text: text})
	id := LiteralID(len(t.lits) - 1)
	t.litIdx[key] = id
	return id
}

// LiteralName returns the source text of a literal.
func (t *Table) LiteralName(id LiteralID) string {
	return t.lits[id].text
}

// LiteralClass returns the class of a literal.
func (t *Table) LiteralClass(id LiteralID) TypeID {
	return t.lits[id].class
}

// Vars returns the number of declared vars.
func (t *Table) Vars() int { return len(t.vars) }

// Literals returns the number of interned literals.
func (t *Table) Literals() int { return len(t.lits) }
