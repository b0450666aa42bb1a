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

package installer

import (
	"context"
	"os/exec"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/scalemesh/kedactl/internal/logging"
)

// CommandRunner executes an external command and returns its combined output.
type CommandRunner interface {
	RunCommand(ctx context.Context, args ...string) (string, error)
}

// NewCommandRunner returns a runner backed by os/exec.
func NewCommandRunner() CommandRunner {
	return &execRunner{}
}

type execRunner struct{}

func (e *execRunner) RunCommand(ctx context.Context, args ...string) (string, error) {
	logger := ctrl.LoggerFrom(ctx)
	logger.V(logging.DEBUG).Info("running command", "args", args)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.CombinedOutput()

	logger.V(logging.TRACE).Info("command finished", "args", args, "output", string(out))
	return string(out), err
}

// FakeCommandRunner is a scripted CommandRunner for tests. Respond decides
// the outcome per invocation; every call is recorded.
type FakeCommandRunner struct {
	Calls   [][]string
	Respond func(args []string) (string, error)
}

var _ CommandRunner = &FakeCommandRunner{}

func (f *FakeCommandRunner) RunCommand(_ context.Context, args ...string) (string, error) {
	f.Calls = append(f.Calls, args)
	if f.Respond == nil {
		return "", nil
	}
	return f.Respond(args)
}
