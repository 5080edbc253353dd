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

	"github.com/bits-and-blooms/bitset"
)

// Circuit is an ordered sequence of gates over a set of registers.  Circuits
// are built once, submitted to a backend and then discarded; they are not
// mutated after submission.
type Circuit struct {
	// Registers allocated within this circuit.
	registers []Register
	// Gates in application order.
	gates []Gate
	// Allocated qubit indices.  Gates may only touch allocated qubits.
	allocated *bitset.BitSet
	// Qubits measured by this circuit (in measurement order, lsb first), or
	// nil if the circuit measures nothing.
	measured []uint
}

// New constructs an empty circuit with no registers and no gates.
func New() *Circuit {
	return &Circuit{nil, nil, bitset.New(0), nil}
}

// Allocate appends a fresh register of the given kind, name and width to this
// circuit, placing it immediately after all previously allocated qubits.
func (p *Circuit) Allocate(kind RegisterKind, name string, width uint) Register {
	if width == 0 {
		panic(fmt.Sprintf("empty register %s", name))
	}
	//
	reg := Register{kind, name, width, p.Qubits()}
	p.registers = append(p.registers, reg)
	//
	for _, q := range reg.Qubits() {
		p.allocated.Set(q)
	}

	return reg
}

// Append adds a gate to the end of this circuit.  This will panic if the gate
// touches an unallocated qubit, since that always indicates a broken builder.
func (p *Circuit) Append(gate Gate) {
	for _, q := range gate.Qubits() {
		if !p.allocated.Test(q) {
			panic(fmt.Sprintf("gate %s touches unallocated qubit %d", gate, q))
		}
	}
	//
	if m, ok := gate.(Measure); ok {
		p.measured = append(p.measured, m.Targets...)
	}
	//
	p.gates = append(p.gates, gate)
}

// Qubits returns the total number of qubits allocated by this circuit.
func (p *Circuit) Qubits() uint {
	return uint(p.allocated.Count())
}

// Gates returns the gates of this circuit in application order.
func (p *Circuit) Gates() []Gate {
	return p.gates
}

// Registers returns the registers of this circuit in allocation order.
func (p *Circuit) Registers() []Register {
	return p.registers
}

// Register returns the first register of a given kind, or false if the
// circuit has none.
func (p *Circuit) Register(kind RegisterKind) (Register, bool) {
	for _, reg := range p.registers {
		if reg.Kind == kind {
			return reg, true
		}
	}

	return Register{}, false
}

// Measured returns the qubits measured by this circuit (least significant
// first).  Measurement outcomes are reported as bitstrings of this width,
// most-significant bit first.
func (p *Circuit) Measured() []uint {
	return p.measured
}
