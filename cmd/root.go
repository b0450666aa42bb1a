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

// Package cmd wires the kedactl subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/scalemesh/kedactl/internal/cluster"
	"github.com/scalemesh/kedactl/internal/config"
	"github.com/scalemesh/kedactl/internal/logging"
)

var (
	v   *viper.Viper
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "kedactl",
	Short: "Deploy and autoscale applications on Kubernetes with KEDA",
	Long: `kedactl installs the KEDA operator, deploys applications described by a
YAML document as Deployment/Service/ScaledObject triples, and reports
their runtime health.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Resolve(v)
		if err != nil {
			return err
		}
		logging.SetupLogger(cfg.LogLevel, true)
		return nil
	},
}

func init() {
	v = config.NewViper()
	if err := config.BindFlags(v, rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(healthCmd)
}

// Execute runs the root command with signal-aware cancellation.
func Execute() {
	if err := rootCmd.ExecuteContext(ctrl.SetupSignalHandler()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func restConfig() (*rest.Config, error) {
	if cfg.Kubeconfig != "" {
		rc, err := clientcmd.BuildConfigFromFlags("", cfg.Kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("loading kubeconfig %q: %w", cfg.Kubeconfig, err)
		}
		return rc, nil
	}
	return ctrl.GetConfig()
}

func newGateway() (*cluster.Gateway, error) {
	rc, err := restConfig()
	if err != nil {
		return nil, err
	}
	return cluster.New(rc, cluster.Options{Timeout: cfg.Timeout})
}
