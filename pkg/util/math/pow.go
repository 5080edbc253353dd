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

import "math/big"

// PowUint64 raises a given base to a given power using repeated squaring.
func PowUint64(base uint64, exp uint64) uint64 {
	result := uint64(1)
	//
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		// div 2
		exp >>= 1
		base *= base
	}

	return result
}

// ModExp2k computes base^(2^k) modulo a given modulus by squaring k times.
// This is used to precompute the multiplier applied by each controlled
// modular-multiplication step of phase estimation.
func ModExp2k(base *big.Int, k uint, modulus *big.Int) *big.Int {
	result := new(big.Int).Mod(base, modulus)
	//
	for i := uint(0); i < k; i++ {
		result.Mul(result, result)
		result.Mod(result, modulus)
	}

	return result
}
