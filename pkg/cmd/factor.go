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
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/quantalab/go-shor/pkg/backend"
	"github.com/quantalab/go-shor/pkg/backend/local"
	"github.com/quantalab/go-shor/pkg/config"
	"github.com/quantalab/go-shor/pkg/shor"
)

// factorCmd represents the factor command
var factorCmd = &cobra.Command{
	Use:   "factor [flags] modulus...",
	Short: "Factor one or more composite integers.",
	Long: `Factor one or more composite integers via quantum period finding.
	Moduli are given in decimal.  Each modulus is factored independently;
	several moduli run concurrently.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := loadConfig(cmd)
		//
		var b backend.Backend
		if seed := getUint(cmd, "seed"); seed != 0 {
			b = local.Seeded(cfg.Qubits, uint64(seed))
		} else {
			b = local.New(cfg.Qubits)
		}
		//
		factorizer := shor.NewFactorizer(b).
			Shots(cfg.Shots).
			Attempts(cfg.Attempts).
			PollInterval(cfg.PollInterval)
		//
		if seed := getUint(cmd, "seed"); seed != 0 {
			factorizer = factorizer.Rand(rand.New(rand.NewSource(int64(seed))))
		}
		// Ctrl-C aborts in-flight attempts at the next state boundary.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		//
		printBanner(b)
		//
		failed := false
		//
		if len(args) == 1 {
			// Single modulus: report progress interactively.
			reporter := newConsoleReporter()
			result, err := factorizer.Reporter(reporter).Factorize(ctx, parseModulus(args[0]))
			reporter.Done()
			//
			failed = printResult(b, args[0], result, err)
		} else {
			// Several moduli run concurrently; progress reporting would
			// interleave, so only results are printed.
			var group errgroup.Group
			//
			results := make([]shor.Factorization, len(args))
			errors := make([]error, len(args))
			//
			for i, arg := range args {
				group.Go(func() error {
					results[i], errors[i] = factorizer.Factorize(ctx, parseModulus(arg))
					return nil
				})
			}
			// Failures are collected per-modulus, never returned.
			_ = group.Wait()
			//
			for i, arg := range args {
				failed = printResult(b, arg, results[i], errors[i]) || failed
			}
		}
		//
		if failed {
			os.Exit(1)
		}
	},
}

// Load run configuration, overlaying any explicitly given flags on top of the
// config-file defaults.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(getString(cmd, "config"))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if cmd.Flags().Changed("qubits") {
		cfg.Qubits = getUint(cmd, "qubits")
	}

	if cmd.Flags().Changed("shots") {
		cfg.Shots = getUint(cmd, "shots")
	}

	if cmd.Flags().Changed("attempts") {
		cfg.Attempts = getUint(cmd, "attempts")
	}

	return cfg
}

func printBanner(b backend.Backend) {
	detailStyle.Printf("backend %s (%d qubits)\n", b.Name(), b.Qubits())
}

// Print the outcome of one factorisation, returning true on failure.
func printResult(b backend.Backend, arg string, result shor.Factorization, err error) bool {
	if err != nil {
		failureStyle.Printf("%s: %v\n", arg, err)
		return true
	}
	//
	successStyle.Printf("%s = %s * %s\n", arg, result.P, result.Q)
	detailStyle.Printf("  attempts: %d, elapsed: %s, qubits used: %d, backend: %s\n",
		result.Attempts, result.Elapsed, result.QubitsUsed, b.Name())

	return false
}

func init() {
	rootCmd.AddCommand(factorCmd)
	factorCmd.Flags().Uint("qubits", 0, "qubit capacity of the execution environment")
	factorCmd.Flags().Uint("shots", 0, "shots per circuit execution")
	factorCmd.Flags().Uint("attempts", 0, "retry budget per modulus")
	factorCmd.Flags().Uint("seed", 0, "seed for base selection and sampling (0 = random)")
}
