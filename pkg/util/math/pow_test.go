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

func Test_Pow_0(t *testing.T) {
	check(0, t)
}

func Test_Pow_1(t *testing.T) {
	check(1, t)
}

func Test_Pow_2(t *testing.T) {
	check(2, t)
}

func Test_Pow_3(t *testing.T) {
	check(3, t)
}

func Test_ModExp2k(t *testing.T) {
	var (
		base    = big.NewInt(7)
		modulus = big.NewInt(15)
		// 7^(2^k) mod 15 for k = 0, 1, 2, ...
		expected = []int64{7, 4, 1, 1, 1}
	)
	//
	for k, e := range expected {
		if x := ModExp2k(base, uint(k), modulus); x.Int64() != e {
			t.Errorf("7^(2^%d) mod 15 == %s != %d", k, x, e)
		}
	}
}

func Test_ModExp2k_Large(t *testing.T) {
	var (
		base    = big.NewInt(1234577)
		modulus = big.NewInt(9999999967)
	)
	// Compare against direct exponentiation.
	for k := uint(0); k < 12; k++ {
		var (
			exp = new(big.Int).Lsh(big.NewInt(1), k)
			e   = new(big.Int).Exp(base, exp, modulus)
		)
		//
		if x := ModExp2k(base, k, modulus); x.Cmp(e) != 0 {
			t.Errorf("%s^(2^%d) mod %s == %s != %s", base, k, modulus, x, e)
		}
	}
}

func check(base uint64, t *testing.T) {
	for i := uint64(0); i < 10; i++ {
		// Bruteforce solution
		e := bruteForce(base, i)
		// Check for a match
		if x := PowUint64(base, i); x != e {
			t.Errorf("%d^%d == %d != %d", base, i, x, e)
		}
	}
}

func bruteForce(base, exp uint64) uint64 {
	acc := uint64(1)
	for i := uint64(0); i < exp; i++ {
		acc *= base
	}

	return acc
}
