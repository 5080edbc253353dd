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
)

// RegisterKind captures the role a given register plays within a circuit, such
// as whether it holds the phase-estimation counting state, the work state
// being operated on, etc.
type RegisterKind struct {
	kind uint8
}

var (
	// COUNTING_REGISTER signals the register whose qubits accumulate the
	// estimated phase, and which is eventually measured.
	COUNTING_REGISTER = RegisterKind{uint8(0)}
	// WORK_REGISTER signals the register holding the value being manipulated
	// by modular arithmetic.
	WORK_REGISTER = RegisterKind{uint8(1)}
	// ANCILLA_REGISTER signals scratch qubits required by reversible
	// arithmetic, which must be returned to their initial state.
	ANCILLA_REGISTER = RegisterKind{uint8(2)}
)

// String returns a human-readable name for this register kind.
func (p RegisterKind) String() string {
	switch p.kind {
	case 0:
		return "counting"
	case 1:
		return "work"
	case 2:
		return "ancilla"
	default:
		panic(fmt.Sprintf("unknown register kind (%d)", p.kind))
	}
}

// Register represents a named, contiguous group of qubits within a circuit.
// Qubits are identified by their global index, with a register occupying
// indices Offset .. Offset+Width-1.  Within a register, the qubit at Offset
// holds the least-significant bit of the value the register represents.
type Register struct {
	// Kind of register (counting / work / ancilla).
	Kind RegisterKind
	// Given name of this register.
	Name string
	// Width (in qubits) of this register.
	Width uint
	// Global index of this register's first (least-significant) qubit.
	Offset uint
}

// Qubit returns the global index of the ith qubit of this register, where
// qubit 0 is least significant.
func (p *Register) Qubit(i uint) uint {
	if i >= p.Width {
		panic(fmt.Sprintf("qubit %d out-of-bounds for register %s", i, p.Name))
	}

	return p.Offset + i
}

// Qubits returns the global indices of all qubits in this register, least
// significant first.
func (p *Register) Qubits() []uint {
	qs := make([]uint, p.Width)
	for i := range qs {
		qs[i] = p.Offset + uint(i)
	}

	return qs
}

// Bound returns the first value which cannot be represented by this register.
// For example, the bound of a 4-qubit register is 16.
func (p *Register) Bound() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), p.Width)
}

// String returns a summary of this register.
func (p *Register) String() string {
	return fmt.Sprintf("%s[%d]@%d", p.Name, p.Width, p.Offset)
}
