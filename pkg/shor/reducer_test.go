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
	"testing"
)

func Test_Reduce_Even(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Every even modulus splits as (2, N/2) with no base drawn.
	for _, n := range []int64{4, 6, 100, 1 << 40} {
		red := reduce(big.NewInt(n), rng)
		//
		if !red.Terminal() {
			t.Fatalf("even %d not reduced", n)
		} else if red.P.Int64() != 2 || red.Q.Int64() != n/2 {
			t.Errorf("%d reduced to (%s, %s)", n, red.P, red.Q)
		}
	}
}

func Test_Reduce_LuckyGcd(t *testing.T) {
	// A base sharing a factor with the modulus short-circuits: gcd(6, 15)
	// is 3, exposing 15 = 3 * 5.
	red := reduceBase(big.NewInt(15), big.NewInt(6))
	//
	if !red.Terminal() {
		t.Fatal("shared factor not detected")
	} else if red.P.Int64() != 3 || red.Q.Int64() != 5 {
		t.Errorf("15 reduced to (%s, %s)", red.P, red.Q)
	}
}

func Test_Reduce_CoprimeBase(t *testing.T) {
	red := reduceBase(big.NewInt(15), big.NewInt(7))
	//
	if red.Terminal() {
		t.Fatalf("coprime base treated as terminal (%s, %s)", red.P, red.Q)
	} else if red.Base.Int64() != 7 {
		t.Errorf("base %s, expected 7", red.Base)
	}
}

// Whatever the random draw, reduction must either produce a genuine factor
// pair or a coprime base within range.
func Test_Reduce_Contract(t *testing.T) {
	var (
		n   = big.NewInt(15)
		one = big.NewInt(1)
		rng = rand.New(rand.NewSource(42))
	)
	//
	for i := 0; i < 100; i++ {
		red := reduce(n, rng)
		//
		if red.Terminal() {
			product := new(big.Int).Mul(red.P, red.Q)
			if product.Cmp(n) != 0 {
				t.Fatalf("(%s, %s) does not multiply to 15", red.P, red.Q)
			}
		} else {
			g := new(big.Int).GCD(nil, nil, red.Base, n)
			//
			if g.Cmp(one) != 0 {
				t.Fatalf("base %s not coprime to 15", red.Base)
			} else if red.Base.Int64() < 2 || red.Base.Int64() > 14 {
				t.Fatalf("base %s out of range", red.Base)
			}
		}
	}
}

func Test_IsPrime(t *testing.T) {
	tests := []struct {
		n     int64
		prime bool
	}{
		{0, false}, {1, false}, {2, true}, {3, true}, {4, false},
		{15, false}, {17, true}, {31, true}, {561, false}, {563, true},
		// Carmichael numbers must not fool the witness set.
		{41041, false}, {825265, false},
		// Large primes and their neighbours.
		{1000000007, true}, {1000000005, false},
		{2305843009213693951, true}, {2305843009213693949, false},
	}
	//
	for _, test := range tests {
		if got := isPrime(big.NewInt(test.n)); got != test.prime {
			t.Errorf("isPrime(%d) == %v", test.n, got)
		}
	}
}

func Test_IsPrime_BeyondUint64(t *testing.T) {
	// 2^89 - 1 is a Mersenne prime.
	mersenne := new(big.Int).Lsh(big.NewInt(1), 89)
	mersenne.Sub(mersenne, big.NewInt(1))
	//
	if !isPrime(mersenne) {
		t.Error("2^89 - 1 reported composite")
	}
	// Its square is clearly not prime.
	square := new(big.Int).Mul(mersenne, mersenne)
	if isPrime(square) {
		t.Error("(2^89 - 1)^2 reported prime")
	}
}

func Test_Validate(t *testing.T) {
	for _, n := range []int64{0, 1, 2, 13, 1000000007} {
		if err := validate(big.NewInt(n)); err == nil {
			t.Errorf("validate(%d) accepted", n)
		}
	}
	//
	for _, n := range []int64{4, 15, 21, 899} {
		if err := validate(big.NewInt(n)); err != nil {
			t.Errorf("validate(%d) rejected: %v", n, err)
		}
	}
}
