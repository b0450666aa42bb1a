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
	"github.com/scalemesh/kedactl/internal/health"
)

var (
	healthDeployment string
	healthNamespace  string
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report the health of a deployed application",
	Long: `Reads the Deployment and its pods and prints a JSON snapshot of replica
counts and per-pod status.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		gw, err := newGateway()
		if err != nil {
			return err
		}
		snapshot, err := health.New(gw).CheckHealth(cmd.Context(), healthDeployment, healthNamespace)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding health snapshot: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	healthCmd.Flags().StringVarP(&healthDeployment, "deployment", "d", "", "name of the deployment to inspect (required)")
	healthCmd.Flags().StringVarP(&healthNamespace, "namespace", "n", appconfig.DefaultNamespace, "namespace of the deployment")
	if err := healthCmd.MarkFlagRequired("deployment"); err != nil {
		panic(err)
	}
}
