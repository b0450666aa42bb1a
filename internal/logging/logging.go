/*
Copyright 2025 The kedactl Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging defines the logr verbosity conventions used across kedactl
// and provides the logger setup shared by the CLI and the test suites.
package logging

import (
	"go.uber.org/zap/zapcore"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Verbosity levels for logr V(). INFO-level messages use V(0) (plain Info).
const (
	// DEBUG marks diagnostic detail useful when investigating a failure.
	DEBUG = 1
	// TRACE marks per-call detail such as full object dumps.
	TRACE = 2
)

// SetupLogger installs a zap-backed logr logger as the controller-runtime
// global logger. level is the maximum verbosity to emit (0 = info only).
func SetupLogger(level int, development bool) {
	opts := []zap.Opts{
		zap.UseDevMode(development),
		zap.Level(zapcore.Level(-level)), //nolint:gosec // level is a small CLI flag value
	}
	ctrl.SetLogger(zap.New(opts...))
}

// NewTestLogger installs a development-mode logger at TRACE verbosity so test
// output carries full diagnostic detail.
func NewTestLogger() {
	SetupLogger(TRACE, true)
}
