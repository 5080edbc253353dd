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
package shor

import (
	"math/big"
	"math/rand"
)

// Reduction is the outcome of one classical reduction pass: either a
// terminal factor pair found without quantum work, or a base coprime to the
// modulus for the quantum period-finding step to use.
type Reduction struct {
	// P, Q hold a complete factor pair, or are nil when reduction found
	// nothing cheap.
	P, Q *big.Int
	// Base drawn for period finding; only set when P, Q are nil.
	Base *big.Int
}

// Terminal determines whether this reduction already factored the modulus.
func (p *Reduction) Terminal() bool {
	return p.P != nil
}

// reduce attempts the cheap classical shortcuts before any circuit is built.
// An even modulus splits immediately as (2, N/2).  Otherwise a random base
// a in [2, N-1] is drawn: if gcd(a, N) > 1 the draw itself exposes a factor,
// and if not, a is coprime to N and suitable for period finding.
func reduce(n *big.Int, rng *rand.Rand) Reduction {
	if n.Bit(0) == 0 {
		return Reduction{two, new(big.Int).Rsh(n, 1), nil}
	}
	// Draw a uniformly from [2, N-1].
	limit := new(big.Int).Sub(n, two)
	a := new(big.Int).Rand(rng, limit)
	a.Add(a, two)

	return reduceBase(n, a)
}

// reduceBase applies the lucky-gcd shortcut for a given base: any common
// divisor with the modulus is itself a factor, and otherwise the base is
// coprime and ready for period finding.
func reduceBase(n, a *big.Int) Reduction {
	g := new(big.Int).GCD(nil, nil, a, n)
	if g.Cmp(big.NewInt(1)) > 0 {
		return Reduction{g, new(big.Int).Div(n, g), nil}
	}

	return Reduction{nil, nil, a}
}

// millerRabinWitnesses suffice for a deterministic primality answer on
// anything below 3.3 * 10^24, which comfortably covers 64-bit inputs.
var millerRabinWitnesses = []int64{2, 325, 9375, 28178, 450775, 9780504, 1795265022}

// smallPrimes used for cheap trial division before any Miller-Rabin round.
var smallPrimes = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31}

// isPrime reports whether a modulus is prime and hence unfactorable here.
// Inputs fitting 64 bits get a deterministic Miller-Rabin test over a fixed
// witness set; larger inputs fall back on a probabilistic test whose error
// rate is far below that of the quantum hardware this guards.
func isPrime(n *big.Int) bool {
	var (
		one = big.NewInt(1)
		rem = new(big.Int)
	)
	//
	if n.Cmp(two) < 0 {
		return false
	}
	//
	for _, p := range smallPrimes {
		bp := big.NewInt(p)
		if rem.Mod(n, bp).Sign() == 0 {
			return n.Cmp(bp) == 0
		}
	}
	//
	if !n.IsUint64() {
		return n.ProbablyPrime(20)
	}
	// Write n-1 as d * 2^s with d odd.
	var (
		nm1 = new(big.Int).Sub(n, one)
		d   = new(big.Int).Set(nm1)
		s   = 0
	)
	//
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}
	//
	for _, w := range millerRabinWitnesses {
		a := big.NewInt(w)
		if a.Cmp(n) >= 0 {
			continue
		}
		//
		x := new(big.Int).Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nm1) == 0 {
			continue
		}
		//
		composite := true
		//
		for i := 0; i < s-1; i++ {
			x.Mul(x, x)
			x.Mod(x, n)
			//
			if x.Cmp(nm1) == 0 {
				composite = false
				break
			}
		}
		//
		if composite {
			return false
		}
	}

	return true
}

var two = big.NewInt(2)

// validate rejects inputs violating the contract: the modulus must be a
// composite integer of at least two.
func validate(n *big.Int) error {
	switch {
	case n == nil || n.Cmp(two) < 0:
		return &InputError{n, "must be at least two"}
	case isPrime(n):
		return &InputError{n, "prime numbers cannot be factored"}
	default:
		return nil
	}
}
