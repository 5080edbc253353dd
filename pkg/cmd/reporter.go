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
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/quantalab/go-shor/pkg/shor"
)

var (
	stageStyle   = color.New(color.FgCyan, color.Bold)
	successStyle = color.New(color.FgHiGreen, color.Bold)
	failureStyle = color.New(color.FgRed, color.Bold)
	detailStyle  = color.New(color.FgHiBlue)
)

// consoleReporter renders progress updates as styled console lines.  On a
// terminal, updates overwrite each other on a single status line; otherwise
// each update is printed on its own line with no styling.
type consoleReporter struct {
	tty bool
}

func newConsoleReporter() *consoleReporter {
	return &consoleReporter{term.IsTerminal(int(os.Stdout.Fd()))}
}

// Report implementation for the shor.Reporter interface.
func (p *consoleReporter) Report(stage shor.Stage, message string) {
	if p.tty {
		fmt.Printf("\r\033[K%s %s", stageStyle.Sprintf("[%s]", stage), message)
	} else {
		fmt.Printf("[%s] %s\n", stage, message)
	}
}

// Done clears the status line so subsequent output starts cleanly.
func (p *consoleReporter) Done() {
	if p.tty {
		fmt.Print("\r\033[K")
	}
}
