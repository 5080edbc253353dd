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
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantalab/go-shor/pkg/backend/local"
)

// backendsCmd represents the backends command
var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available execution backends.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		b := local.New(cfg.Qubits)
		//
		fmt.Printf("%s: %d qubits\n", b.Name(), b.Qubits())
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
	backendsCmd.Flags().Uint("qubits", 0, "qubit capacity of the execution environment")
}
