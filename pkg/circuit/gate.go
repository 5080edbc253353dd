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
package circuit

import (
	"fmt"
	"math/big"
	"strings"
)

// Gate represents a single operation within a circuit.  Gates are pure
// descriptions: executing them is the responsibility of whatever backend the
// circuit is submitted to.
type Gate interface {
	// Qubits returns the global indices of all qubits this gate touches
	// (controls included).
	Qubits() []uint
	// String returns a human-readable rendering of this gate.
	String() string
}

// Hadamard places a single qubit into an equal superposition of its basis
// states.
type Hadamard struct {
	// Target qubit.
	Target uint
}

// Qubits implementation for the Gate interface.
func (p Hadamard) Qubits() []uint { return []uint{p.Target} }

func (p Hadamard) String() string { return fmt.Sprintf("H(%d)", p.Target) }

// PauliX flips a single qubit.
type PauliX struct {
	// Target qubit.
	Target uint
}

// Qubits implementation for the Gate interface.
func (p PauliX) Qubits() []uint { return []uint{p.Target} }

func (p PauliX) String() string { return fmt.Sprintf("X(%d)", p.Target) }

// ControlledModMul applies the unitary |y> -> |m*y mod N> to the target
// register whenever the control qubit is set, leaving basis states y >= N
// untouched.  This is the modular-exponentiation oracle of phase estimation:
// applied with multiplier a^(2^q) mod N under control of counting qubit q, the
// sequence over all counting qubits realises y -> y * a^x mod N for the
// superposed exponent x.  The multiplier must be coprime to the modulus, since
// otherwise the mapping is not a permutation of Z_N (and hence not unitary).
// The ancilla qubit is borrowed scratch space for reversible decomposition of
// the multiplication into modular additions, and is restored by the time the
// gate completes.
type ControlledModMul struct {
	// Control qubit.
	Control uint
	// Target qubits holding y, least significant first.
	Targets []uint
	// Ancilla (scratch) qubit.
	Ancilla uint
	// Multiplier m, already reduced modulo the modulus.
	Multiplier *big.Int
	// Modulus N.
	Modulus *big.Int
}

// Qubits implementation for the Gate interface.
func (p ControlledModMul) Qubits() []uint {
	qs := make([]uint, 0, len(p.Targets)+2)
	qs = append(qs, p.Control)
	qs = append(qs, p.Targets...)

	return append(qs, p.Ancilla)
}

func (p ControlledModMul) String() string {
	return fmt.Sprintf("CMODMUL(%d; %s mod %s)", p.Control, p.Multiplier, p.Modulus)
}

// InverseQFT applies the inverse Quantum Fourier Transform to a group of
// qubits, least significant first.  Backends expand this into its standard
// decomposition of Hadamard and controlled-phase rotations (plus the qubit
// reversal), or apply the equivalent unitary directly.
type InverseQFT struct {
	// Target qubits, least significant first.
	Targets []uint
}

// Qubits implementation for the Gate interface.
func (p InverseQFT) Qubits() []uint { return p.Targets }

func (p InverseQFT) String() string {
	return fmt.Sprintf("IQFT(%s)", joinQubits(p.Targets))
}

// Measure collapses a group of qubits into a classical bitstring of matching
// width, most-significant bit first.
type Measure struct {
	// Target qubits, least significant first.
	Targets []uint
}

// Qubits implementation for the Gate interface.
func (p Measure) Qubits() []uint { return p.Targets }

func (p Measure) String() string {
	return fmt.Sprintf("M(%s)", joinQubits(p.Targets))
}

func joinQubits(qs []uint) string {
	var builder strings.Builder
	//
	for i, q := range qs {
		if i != 0 {
			builder.WriteString(",")
		}

		fmt.Fprintf(&builder, "%d", q)
	}

	return builder.String()
}
