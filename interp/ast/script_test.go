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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// scriptCase is one fixture from testdata/expressions.yaml: the builder
// operations the parser would emit for expr, and the expected tree.
type scriptCase struct {
	Name string   `yaml:"name"`
	Expr string   `yaml:"expr"`
	Ops  []string `yaml:"ops"`
	Want string   `yaml:"want"`
}

type scriptFile struct {
	Cases []scriptCase `yaml:"cases"`
}

var binOps = map[string]Op{
	"=":   OpAssign,
	"/=":  OpDivAssign,
	"*=":  OpMulAssign,
	"+=":  OpPlusAssign,
	"-=":  OpMinusAssign,
	"<<=": OpLeftShiftAssign,
	">>=": OpRightShiftAssign,
	"||":  OpLogicalOr,
	"&&":  OpLogicalAnd,
	"==":  OpEqEq,
	"!=":  OpNotEq,
	"<":   OpLt,
	">":   OpGt,
	"<=":  OpLtEq,
	">=":  OpGtEq,
	"|":   OpBitwiseOr,
	"^":   OpBitwiseXor,
	"&":   OpBitwiseAnd,
	"<<":  OpLeftShift,
	">>":  OpRightShift,
	"+":   OpPlus,
	"-":   OpMinus,
	"*":   OpMultiply,
	"/":   OpDivide,
	"%":   OpModulo,
}

var unaryOps = map[string]Op{
	"-": OpUnaryMinus,
	"!": OpUnaryNot,
}

var enterKinds = map[string]Kind{
	"call":      Call,
	"list":      List,
	"subscript": Subscript,
	"parenth":   Parenth,
}

// apply runs one script op against the fixture.
func (f *fixture) apply(op string) error {
	fields := strings.Fields(op)
	if len(fields) == 0 {
		return fmt.Errorf("empty op")
	}
	switch cmd, rest := fields[0], fields[1:]; cmd {
	case "sym":
		f.sym(rest[0])
	case "local":
		f.local(rest[0])
	case "lit":
		f.lit(rest[0])
	case "bin":
		o, ok := binOps[rest[0]]
		if !ok {
			return fmt.Errorf("unknown binary op %q", rest[0])
		}
		f.bin(o)
	case "unary":
		o, ok := unaryOps[rest[0]]
		if !ok {
			return fmt.Errorf("unknown unary op %q", rest[0])
		}
		f.unary(o)
	case "cast":
		f.cast(rest[0])
	case "emptylist":
		f.emptyList(rest[0])
	case "enter":
		kind, ok := enterKinds[rest[0]]
		if !ok {
			return fmt.Errorf("unknown grouping %q", rest[0])
		}
		if kind == Call && len(rest) > 1 {
			f.enterCall(rest[1])
		} else {
			f.enter(kind)
		}
	case "collect":
		f.collect()
	case "leave":
		f.leave()
	default:
		return fmt.Errorf("unknown op %q", cmd)
	}
	return nil
}

func TestExpressionScripts(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "expressions.yaml"))
	require.NoError(t, err)

	var file scriptFile
	require.NoError(t, yaml.Unmarshal(raw, &file))
	require.NotEmpty(t, file.Cases)

	// One builder serves every case; each expression starts after a reset,
	// the way the parser uses it.
	f := newFixture(t)
	for _, tc := range file.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			f.t = t
			f.b.Reset()
			for _, op := range tc.Ops {
				require.NoError(t, f.apply(op), "op %q (%s)", op, tc.Expr)
			}

			require.Equal(t, 0, f.b.Depth(), "save stack not drained for %s", tc.Expr)
			require.NoError(t, Validate(f.b.Pool(), f.b.Root()))
			got := Sexpr(f.b.Pool(), f.tab, f.b.Root())
			if diff := cmp.Diff(tc.Want, got); diff != "" {
				require.FailNow(t, "tree mismatch (-expected +actual)", diff)
			}
		})
	}
}
