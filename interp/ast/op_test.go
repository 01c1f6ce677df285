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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriorityTable(t *testing.T) {
	testcases := []struct {
		priority int
		ops      []Op
	}{
		{0, []Op{OpAssign, OpDivAssign, OpMulAssign, OpPlusAssign,
			OpMinusAssign, OpLeftShiftAssign, OpRightShiftAssign}},
		{1, []Op{OpLogicalOr}},
		{2, []Op{OpLogicalAnd}},
		{3, []Op{OpEqEq, OpNotEq}},
		{4, []Op{OpLt, OpGt, OpLtEq, OpGtEq}},
		{5, []Op{OpBitwiseOr}},
		{6, []Op{OpBitwiseXor}},
		{7, []Op{OpBitwiseAnd}},
		{8, []Op{OpLeftShift, OpRightShift}},
		{9, []Op{OpPlus, OpMinus}},
		{10, []Op{OpMultiply, OpDivide, OpModulo}},
		{11, []Op{OpUnaryNot, OpUnaryMinus}},
	}

	for _, tc := range testcases {
		for _, op := range tc.ops {
			require.Equal(t, tc.priority, priorityFor(op), "op %v", op)
		}
	}
}
