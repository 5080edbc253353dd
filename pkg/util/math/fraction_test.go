// Copyright Quantalab Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package math

import (
	"math/big"
	"testing"
)

// Exact rationals k/q with q within the bound must be recovered verbatim.
func Test_BestApproximation_Exact(t *testing.T) {
	bound := big.NewInt(64)
	//
	for q := int64(2); q <= 64; q++ {
		for k := int64(1); k < q; k++ {
			if gcd(k, q) != 1 {
				continue
			}
			//
			var (
				x = big.NewRat(k, q)
				r = BestApproximation(x, bound)
			)
			//
			if r.Cmp(x) != 0 {
				t.Errorf("%d/%d approximated as %s", k, q, r)
			}
		}
	}
}

// Dyadic phases, as decoded from a counting register, must approximate to
// the fraction s/r they estimate.
func Test_BestApproximation_Dyadic(t *testing.T) {
	tests := []struct {
		num, den int64
		bound    int64
		expect   *big.Rat
	}{
		// 192/256 is exactly 3/4.
		{192, 256, 15, big.NewRat(3, 4)},
		// 64/256 is exactly 1/4.
		{64, 256, 15, big.NewRat(1, 4)},
		// 85/256 is close to 1/3.
		{85, 256, 15, big.NewRat(1, 3)},
		// 205/256 is close to 4/5.
		{205, 256, 15, big.NewRat(4, 5)},
		// 43/256 is close to 1/6.
		{43, 256, 15, big.NewRat(1, 6)},
		// Phase zero stays zero.
		{0, 256, 15, big.NewRat(0, 1)},
	}
	//
	for _, test := range tests {
		var (
			x = big.NewRat(test.num, test.den)
			r = BestApproximation(x, big.NewInt(test.bound))
		)
		//
		if r.Cmp(test.expect) != 0 {
			t.Errorf("%d/%d bounded by %d approximated as %s, expected %s",
				test.num, test.den, test.bound, r, test.expect)
		}
	}
}

// The approximation is a function: identical inputs give identical outputs.
func Test_BestApproximation_Deterministic(t *testing.T) {
	var (
		x     = big.NewRat(123456789, 1<<30)
		bound = big.NewInt(99991)
		first = BestApproximation(x, bound)
	)
	//
	for i := 0; i < 10; i++ {
		if r := BestApproximation(x, bound); r.Cmp(first) != 0 {
			t.Errorf("approximation not deterministic: %s != %s", r, first)
		}
	}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
