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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scalemesh/kedactl/internal/appconfig"
	"github.com/scalemesh/kedactl/internal/orchestrator"
)

var (
	deployConfigPath string
	deployDryRun     bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy an application from a config document",
	Long: `Validates the application document, then applies its Deployment, Service,
and ScaledObject to the cluster in order. With --dry-run the rendered
manifests are printed instead of applied.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		raw, err := appconfig.Load(deployConfigPath)
		if err != nil {
			return err
		}

		if deployDryRun {
			manifests, err := orchestrator.New(nil).Render(raw)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(manifests))
			return nil
		}

		gw, err := newGateway()
		if err != nil {
			return err
		}
		result, err := orchestrator.New(gw).Deploy(cmd.Context(), raw)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding deploy result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	deployCmd.Flags().StringVarP(&deployConfigPath, "config", "c", "", "path to the application config document (required)")
	deployCmd.Flags().BoolVar(&deployDryRun, "dry-run", false, "render the manifests without touching the cluster")
	if err := deployCmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
}
