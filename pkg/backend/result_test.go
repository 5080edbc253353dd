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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Result_MostFrequent(t *testing.T) {
	result := &Result{
		Counts: map[string]uint{"0100": 100, "1100": 600, "0001": 324},
		Width:  4,
		Shots:  1024,
	}
	//
	outcome := result.MostFrequent()
	assert.Equal(t, "1100", outcome.Bitstring)
	assert.Equal(t, uint(600), outcome.Count)
	assert.Equal(t, int64(12), outcome.Value().Int64())
}

func Test_Result_MostFrequent_TieBreak(t *testing.T) {
	result := &Result{
		Counts: map[string]uint{"1100": 512, "0100": 512},
		Width:  4,
		Shots:  1024,
	}
	// Ties resolve towards the lexicographically smallest bitstring,
	// however often the histogram is consulted.
	for i := 0; i < 16; i++ {
		assert.Equal(t, "0100", result.MostFrequent().Bitstring)
	}
}

func Test_Result_TopOutcomes(t *testing.T) {
	result := &Result{
		Counts: map[string]uint{"00": 1, "01": 4, "10": 3, "11": 2},
		Width:  2,
		Shots:  10,
	}
	//
	top := result.TopOutcomes(3)
	assert.Len(t, top, 3)
	assert.Equal(t, "01", top[0].Bitstring)
	assert.Equal(t, "10", top[1].Bitstring)
	assert.Equal(t, "11", top[2].Bitstring)
	// Requesting more outcomes than exist returns them all.
	assert.Len(t, result.TopOutcomes(10), 4)
}
