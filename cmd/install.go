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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scalemesh/kedactl/internal/installer"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the KEDA operator via helm",
	Long: `Ensures helm is available, installs the KEDA chart into the configured
namespace (skipping the release when it already exists), and waits for
the keda-operator pod to be Running.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		gw, err := newGateway()
		if err != nil {
			return err
		}
		inst := installer.New(installer.NewCommandRunner(), gw,
			installer.Options{Namespace: cfg.KedaNamespace})
		if err := inst.EnsureInstalled(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "KEDA is installed and running in namespace %q\n", cfg.KedaNamespace)
		return nil
	},
}
