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
package shor

import (
	log "github.com/sirupsen/logrus"
)

// Reporter receives progress updates as a factorisation moves through its
// stages.  Implementations are injected by the caller, which keeps any
// console or UI concern out of the algorithm itself.
type Reporter interface {
	// Report is invoked on every stage transition with the stage entered and
	// a short status message.
	Report(stage Stage, message string)
}

// NopReporter discards all progress updates.
type NopReporter struct{}

// Report implementation for the Reporter interface.
func (p NopReporter) Report(Stage, string) {}

// LogReporter forwards progress updates to the debug log.
type LogReporter struct{}

// Report implementation for the Reporter interface.
func (p LogReporter) Report(stage Stage, message string) {
	log.Debugf("[%s] %s", stage, message)
}
