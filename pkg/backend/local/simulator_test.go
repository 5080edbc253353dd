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
package local

import (
	"context"
	"math"
	"math/big"
	"math/cmplx"
	"testing"

	"github.com/quantalab/go-shor/pkg/circuit"
)

const epsilon = 1e-9

// A layer of Hadamards yields the uniform superposition.
func Test_Statevector_HadamardLayer(t *testing.T) {
	state := newStatevector(3)
	//
	for q := uint(0); q < 3; q++ {
		state.hadamard(q)
	}
	//
	expected := complex(1/math.Sqrt(8), 0)
	//
	for i, a := range state.amps {
		if cmplx.Abs(a-expected) > epsilon {
			t.Errorf("amplitude %d is %v, expected %v", i, a, expected)
		}
	}
}

func Test_Statevector_PauliX(t *testing.T) {
	state := newStatevector(2)
	state.pauliX(1)
	//
	if cmplx.Abs(state.amps[2]-1) > epsilon {
		t.Errorf("expected |10>, got %v", state.amps)
	}
}

// Controlled modular multiplication permutes basis states by y -> m*y mod N
// when the control is set, and does nothing otherwise.
func Test_Statevector_ControlledModMul(t *testing.T) {
	gate := circuit.ControlledModMul{
		Control:    0,
		Targets:    []uint{1, 2, 3, 4},
		Ancilla:    5,
		Multiplier: big.NewInt(7),
		Modulus:    big.NewInt(15),
	}
	//
	for y := uint64(0); y < 16; y++ {
		// Control set: |1, y> must map to |1, 7y mod 15> (y < 15).
		state := newStatevector(6)
		state.amps[0] = 0
		state.amps[1|(y<<1)] = 1
		state.controlledModMul(gate)
		//
		expected := y
		if y < 15 {
			expected = (7 * y) % 15
		}
		//
		if cmplx.Abs(state.amps[1|(expected<<1)]-1) > epsilon {
			t.Errorf("|1,%d> did not map to |1,%d>", y, expected)
		}
		// Control clear: |0, y> must be fixed.
		state = newStatevector(6)
		state.amps[0] = 0
		state.amps[y<<1] = 1
		state.controlledModMul(gate)
		//
		if cmplx.Abs(state.amps[y<<1]-1) > epsilon {
			t.Errorf("|0,%d> was not fixed", y)
		}
	}
}

// The gate-level inverse QFT must agree with the inverse Fourier matrix.
func Test_Statevector_InverseQFT(t *testing.T) {
	const m = 4
	const dim = 1 << m
	// Fix an arbitrary (normalised) input state.
	input := make([]complex128, dim)
	for i := range input {
		input[i] = complex(float64(i+1), float64(dim-i)/3)
	}
	//
	normalise(input)
	//
	state := newStatevector(m)
	copy(state.amps, input)
	state.inverseQFT([]uint{0, 1, 2, 3})
	// Direct inverse transform: out[x] = sum_y e^(-2*pi*i*x*y/dim) in[y] / sqrt(dim).
	for x := 0; x < dim; x++ {
		expected := complex(0, 0)
		//
		for y := 0; y < dim; y++ {
			angle := -2 * math.Pi * float64(x*y) / dim
			expected += input[y] * cmplx.Exp(complex(0, angle))
		}
		//
		expected /= complex(math.Sqrt(dim), 0)
		//
		if cmplx.Abs(state.amps[x]-expected) > 1e-6 {
			t.Fatalf("outcome %d is %v, expected %v", x, state.amps[x], expected)
		}
	}
}

// Phase estimation of the known period of 7^x mod 15 must concentrate all
// probability on multiples of 64, i.e. on phases k/4.
func Test_Statevector_PhaseEstimation(t *testing.T) {
	qc, err := circuit.NewPhaseEstimation(big.NewInt(7), big.NewInt(15), 16)
	if err != nil {
		t.Fatal(err)
	}
	//
	state := newStatevector(qc.Qubits())
	if err := state.run(context.Background(), qc); err != nil {
		t.Fatal(err)
	}
	//
	probs := state.probabilities(qc.Measured())
	//
	for v, prob := range probs {
		if v%64 == 0 {
			// The period divides the counting range exactly, so each of the
			// four peaks carries a quarter of the probability.
			if math.Abs(prob-0.25) > 1e-6 {
				t.Errorf("peak %d has probability %v, expected 0.25", v, prob)
			}
		} else if prob > 1e-9 {
			t.Errorf("outcome %d has probability %v, expected 0", v, prob)
		}
	}
}

func normalise(amps []complex128) {
	norm := 0.0
	for _, a := range amps {
		norm += real(a)*real(a) + imag(a)*imag(a)
	}
	//
	scale := complex(1/math.Sqrt(norm), 0)
	for i := range amps {
		amps[i] *= scale
	}
}
