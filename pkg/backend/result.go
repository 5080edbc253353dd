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
package backend

import (
	"fmt"
	"math/big"
	"sort"
)

// Result holds the outcome histogram of one executed job.  Keys are
// fixed-width bitstrings over the measured register, most-significant bit
// first; values are the number of shots observing that outcome.
type Result struct {
	// Counts maps each observed bitstring to its frequency.
	Counts map[string]uint
	// Width (in bits) of every key.
	Width uint
	// Shots executed in total.  Counts sum to this.
	Shots uint
}

// Outcome pairs one measured bitstring with its observed frequency.
type Outcome struct {
	// Bitstring observed, most-significant bit first.
	Bitstring string
	// Count of shots observing it.
	Count uint
}

// Value converts an outcome's bitstring into the integer it encodes.
func (p *Outcome) Value() *big.Int {
	value, ok := new(big.Int).SetString(p.Bitstring, 2)
	if !ok {
		panic(fmt.Sprintf("malformed outcome bitstring %q", p.Bitstring))
	}

	return value
}

// MostFrequent returns the most frequently observed outcome.  Ties are broken
// towards the lexicographically smallest bitstring, which keeps decoding
// deterministic; which of several equally likely peaks wins is otherwise a
// don't-care.  This will panic on an empty histogram, since backends must
// never produce one.
func (p *Result) MostFrequent() Outcome {
	outcomes := p.TopOutcomes(1)
	//
	if len(outcomes) == 0 {
		panic("empty outcome histogram")
	}

	return outcomes[0]
}

// TopOutcomes returns the k most frequent outcomes in decreasing order of
// frequency, with ties broken towards lexicographically smaller bitstrings.
// Fewer than k outcomes are returned when the histogram is smaller than k.
func (p *Result) TopOutcomes(k int) []Outcome {
	outcomes := make([]Outcome, 0, len(p.Counts))
	//
	for bits, count := range p.Counts {
		outcomes = append(outcomes, Outcome{bits, count})
	}
	//
	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].Count != outcomes[j].Count {
			return outcomes[i].Count > outcomes[j].Count
		}

		return outcomes[i].Bitstring < outcomes[j].Bitstring
	})
	//
	if len(outcomes) > k {
		outcomes = outcomes[:k]
	}

	return outcomes
}
