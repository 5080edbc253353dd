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

// Package config holds the execution-environment configuration: the qubit
// capacity ceiling and the defaults governing shots, retries and polling.
// Values come from an optional YAML config file (viper), with command-line
// flags taking precedence.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config captures the tunable parameters of a factorisation run.
type Config struct {
	// Qubits available on the execution environment.  This bounds the
	// largest acceptable modulus.
	Qubits uint `mapstructure:"qubits"`
	// Shots per circuit execution.
	Shots uint `mapstructure:"shots"`
	// Attempts before the retry budget is exhausted.
	Attempts uint `mapstructure:"attempts"`
	// PollInterval between job status polls.
	PollInterval time.Duration `mapstructure:"poll-interval"`
}

// Default returns the configuration used in the absence of any config file
// or flags: a 127-qubit environment, 1024 shots, 8 attempts, 500ms polls.
func Default() Config {
	return Config{
		Qubits:       127,
		Shots:        1024,
		Attempts:     8,
		PollInterval: 500 * time.Millisecond,
	}
}

// Load reads the configuration, starting from the defaults and overlaying
// any go-shor.yaml found in the given path (when non-empty), the user's
// config directory, or the working directory.  A missing config file is not
// an error; a malformed one is.
func Load(path string) (Config, error) {
	var (
		cfg = Default()
		v   = viper.New()
	)
	//
	v.SetConfigName("go-shor")
	v.SetConfigType("yaml")
	//
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "go-shor"))
		}

		v.AddConfigPath(".")
	}
	//
	v.SetDefault("qubits", cfg.Qubits)
	v.SetDefault("shots", cfg.Shots)
	v.SetDefault("attempts", cfg.Attempts)
	v.SetDefault("poll-interval", cfg.PollInterval)
	//
	if err := v.ReadInConfig(); err != nil {
		// Only a missing file is tolerated.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}
	//
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
