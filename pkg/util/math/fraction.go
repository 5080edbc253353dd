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
)

// BestApproximation determines the closest rational approximation p/q to a
// given value x whose denominator q does not exceed a given bound.  This walks
// the convergents of the continued-fraction expansion of x until the
// denominator bound is crossed, then compares the final convergent against the
// best semiconvergent.  The result is deterministic: identical inputs always
// yield the identical fraction.  This will panic if the bound is less than
// one.
func BestApproximation(x *big.Rat, bound *big.Int) *big.Rat {
	if bound.Sign() <= 0 {
		panic("denominator bound must be at least one")
	}
	// Already within bound, nothing to do.
	if x.Denom().Cmp(bound) <= 0 {
		return new(big.Rat).Set(x)
	}
	//
	var (
		// Previous and current convergents p0/q0 and p1/q1.
		p0 = big.NewInt(0)
		q0 = big.NewInt(1)
		p1 = big.NewInt(1)
		q1 = big.NewInt(0)
		// Remaining fraction n/d being expanded.
		n = new(big.Int).Set(x.Num())
		d = new(big.Int).Set(x.Denom())
	)
	//
	for {
		var (
			a = new(big.Int)
			r = new(big.Int)
		)
		// Next continued-fraction term a = floor(n/d).
		a.QuoRem(n, d, r)
		// Candidate denominator q2 = q0 + a*q1.
		q2 := new(big.Int).Mul(a, q1)
		q2.Add(q2, q0)
		//
		if q2.Cmp(bound) > 0 {
			break
		}
		// Shift convergents along.
		p2 := new(big.Int).Mul(a, p1)
		p2.Add(p2, p0)
		p0, q0, p1, q1 = p1, q1, p2, q2
		n, d = d, r
	}
	// Largest k such that q0 + k*q1 <= bound.
	k := new(big.Int).Sub(bound, q0)
	k.Quo(k, q1)
	// Semiconvergent (p0 + k*p1) / (q0 + k*q1).
	sp := new(big.Int).Mul(k, p1)
	sp.Add(sp, p0)
	sq := new(big.Int).Mul(k, q1)
	sq.Add(sq, q0)
	//
	var (
		first  = new(big.Rat).SetFrac(sp, sq)
		second = new(big.Rat).SetFrac(p1, q1)
		d1     = new(big.Rat).Sub(first, x)
		d2     = new(big.Rat).Sub(second, x)
	)
	// On a tie, prefer the convergent (smaller denominator loses).
	if d2.Abs(d2).Cmp(d1.Abs(d1)) <= 0 {
		return second
	}

	return first
}
