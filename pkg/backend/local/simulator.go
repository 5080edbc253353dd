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
	"fmt"
	gomath "math"
	"math/big"
	"math/cmplx"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/quantalab/go-shor/pkg/circuit"
	"github.com/quantalab/go-shor/pkg/util/math"
)

// MaxQubits bounds the statevector size at 2^30 amplitudes (16GiB).  Larger
// states cannot be allocated, and beyond 63 qubits the amplitude count would
// not even fit a uint64, so the backend clamps its advertised capacity here.
const MaxQubits = 30

// statevector represents the full quantum state of a circuit's qubits as a
// dense vector of 2^n amplitudes, where basis-state index i has qubit q in
// state (i >> q) & 1.
type statevector struct {
	qubits uint
	amps   []complex128
}

// newStatevector constructs the all-zeros state |0...0>.  The backend rejects
// circuits above MaxQubits at submission, so the panic is unreachable from
// the Backend interface.
func newStatevector(qubits uint) *statevector {
	if qubits > MaxQubits {
		panic(fmt.Sprintf("cannot simulate %d qubits (limit %d)", qubits, MaxQubits))
	}
	//
	amps := make([]complex128, uint64(1)<<qubits)
	amps[0] = 1

	return &statevector{qubits, amps}
}

// run applies every gate of a circuit to this state in order, checking for
// cancellation between gates.  Measurement gates are skipped here: sampling
// happens separately once the final state is known.
func (p *statevector) run(ctx context.Context, qc *circuit.Circuit) error {
	for _, gate := range qc.Gates() {
		if err := ctx.Err(); err != nil {
			return err
		}
		//
		switch g := gate.(type) {
		case circuit.Hadamard:
			p.hadamard(g.Target)
		case circuit.PauliX:
			p.pauliX(g.Target)
		case circuit.ControlledModMul:
			p.controlledModMul(g)
		case circuit.InverseQFT:
			p.inverseQFT(g.Targets)
		case circuit.Measure:
			// handled by sample
		default:
			return fmt.Errorf("unsupported gate %s", gate)
		}
	}

	return nil
}

func (p *statevector) hadamard(target uint) {
	var (
		mask = uint64(1) << target
		s    = complex(1/gomath.Sqrt2, 0)
	)
	//
	for i := uint64(0); i < uint64(len(p.amps)); i++ {
		if i&mask == 0 {
			a0, a1 := p.amps[i], p.amps[i|mask]
			p.amps[i] = s * (a0 + a1)
			p.amps[i|mask] = s * (a0 - a1)
		}
	}
}

func (p *statevector) pauliX(target uint) {
	mask := uint64(1) << target
	//
	for i := uint64(0); i < uint64(len(p.amps)); i++ {
		if i&mask == 0 {
			p.amps[i], p.amps[i|mask] = p.amps[i|mask], p.amps[i]
		}
	}
}

// controlledPhase multiplies the amplitude of every basis state having both
// qubits set by e^(i*theta).
func (p *statevector) controlledPhase(control, target uint, theta float64) {
	var (
		mask  = (uint64(1) << control) | (uint64(1) << target)
		phase = cmplx.Exp(complex(0, theta))
	)
	//
	for i := uint64(0); i < uint64(len(p.amps)); i++ {
		if i&mask == mask {
			p.amps[i] *= phase
		}
	}
}

func (p *statevector) swap(a, b uint) {
	var (
		maskA = uint64(1) << a
		maskB = uint64(1) << b
	)
	//
	for i := uint64(0); i < uint64(len(p.amps)); i++ {
		// Pick out states with qubit a set and qubit b clear; their partner
		// under the swap has the two bits exchanged.
		if i&maskA != 0 && i&maskB == 0 {
			j := (i &^ maskA) | maskB
			p.amps[i], p.amps[j] = p.amps[j], p.amps[i]
		}
	}
}

// controlledModMul permutes basis states according to y -> m*y mod N on the
// target bits whenever the control qubit is set.  Basis states encoding
// y >= N are fixed, so the mapping stays a permutation of the whole space.
func (p *statevector) controlledModMul(g circuit.ControlledModMul) {
	var (
		cmask   = uint64(1) << g.Control
		modulus = g.Modulus.Uint64()
		width   = uint(len(g.Targets))
		perm    = make([]uint64, math.PowUint64(2, uint64(width)))
		y       = new(big.Int)
	)
	// Tabulate the permutation over work-register values.
	for i := range perm {
		if uint64(i) < modulus {
			y.SetUint64(uint64(i))
			y.Mul(y, g.Multiplier)
			y.Mod(y, g.Modulus)
			perm[i] = y.Uint64()
		} else {
			perm[i] = uint64(i)
		}
	}
	//
	out := make([]complex128, len(p.amps))
	//
	for i := uint64(0); i < uint64(len(p.amps)); i++ {
		if i&cmask == 0 {
			out[i] = p.amps[i]
			continue
		}
		// Extract y from the target bits, permute, reinsert.
		j := p.withValue(i, g.Targets, perm[p.value(i, g.Targets)])
		out[j] = p.amps[i]
	}
	//
	p.amps = out
}

// inverseQFT applies the inverse Fourier transform to the given qubits (least
// significant first), via the textbook decomposition: qubit reversal followed
// by interleaved controlled-phase rotations and Hadamards.
func (p *statevector) inverseQFT(targets []uint) {
	m := len(targets)
	//
	for i := 0; i < m/2; i++ {
		p.swap(targets[i], targets[m-1-i])
	}
	//
	for j := 0; j < m; j++ {
		for k := 0; k < j; k++ {
			p.controlledPhase(targets[k], targets[j], -gomath.Pi/float64(uint64(1)<<(j-k)))
		}

		p.hadamard(targets[j])
	}
}

// value extracts the integer encoded by the given qubits (least significant
// first) within basis-state index i.
func (p *statevector) value(i uint64, qubits []uint) uint64 {
	v := uint64(0)
	//
	for b, q := range qubits {
		v |= ((i >> q) & 1) << b
	}

	return v
}

// withValue returns basis-state index i with the given qubits overwritten by
// the bits of v.
func (p *statevector) withValue(i uint64, qubits []uint, v uint64) uint64 {
	for b, q := range qubits {
		i &^= uint64(1) << q
		i |= ((v >> uint(b)) & 1) << q
	}

	return i
}

// probabilities marginalises the state onto the given qubits, returning the
// probability of each of their 2^k joint outcomes.
func (p *statevector) probabilities(qubits []uint) []float64 {
	probs := make([]float64, math.PowUint64(2, uint64(len(qubits))))
	//
	for i := uint64(0); i < uint64(len(p.amps)); i++ {
		a := p.amps[i]
		probs[p.value(i, qubits)] += real(a)*real(a) + imag(a)*imag(a)
	}
	// Guard against accumulated floating-point drift.
	floats.Scale(1/floats.Sum(probs), probs)

	return probs
}

// sample draws the given number of shots from the measurement distribution
// over the circuit's measured qubits, returning the outcome histogram keyed
// by fixed-width bitstring (most-significant bit first).
func (p *statevector) sample(qc *circuit.Circuit, shots uint, rng *rand.Rand) map[string]uint {
	var (
		measured = qc.Measured()
		probs    = p.probabilities(measured)
		cdf      = make([]float64, len(probs))
		counts   = make(map[string]uint)
	)
	//
	floats.CumSum(cdf, probs)
	//
	for i := uint(0); i < shots; i++ {
		outcome := sort.SearchFloat64s(cdf, rng.Float64())
		if outcome >= len(probs) {
			outcome = len(probs) - 1
		}
		//
		key := fmt.Sprintf("%0*b", len(measured), outcome)
		counts[key]++
	}

	return counts
}
