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

// Package config holds the tool-level settings shared by every kedactl
// command. Settings come from flags and KEDACTL_* environment variables,
// with flags winning.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/util/validation"
)

const envPrefix = "KEDACTL"

// Defaults for tool settings.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultKedaNamespace = "keda"
	DefaultLogLevel      = 0
)

// Config is the resolved tool configuration.
type Config struct {
	// Kubeconfig is an explicit kubeconfig path. Empty means use the
	// standard in-cluster / $KUBECONFIG / ~/.kube/config resolution.
	Kubeconfig string `mapstructure:"kubeconfig"`

	// Timeout bounds each individual cluster call.
	Timeout time.Duration `mapstructure:"timeout"`

	// KedaNamespace is where the KEDA release lives.
	KedaNamespace string `mapstructure:"keda-namespace"`

	// LogLevel is the logr verbosity (0=info, 1=debug, 2=trace).
	LogLevel int `mapstructure:"log-level"`
}

// NewViper returns a viper instance preloaded with defaults and wired to
// the KEDACTL_ environment prefix (flag "keda-namespace" maps to
// KEDACTL_KEDA_NAMESPACE).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("kubeconfig", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("keda-namespace", DefaultKedaNamespace)
	v.SetDefault("log-level", DefaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags registers the shared flags on fs and binds them into v so
// command-line values override environment and defaults.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("kubeconfig", "", "path to a kubeconfig file (defaults to standard resolution)")
	fs.Duration("timeout", DefaultTimeout, "timeout for each cluster operation")
	fs.String("keda-namespace", DefaultKedaNamespace, "namespace of the KEDA installation")
	fs.Int("log-level", DefaultLogLevel, "log verbosity (0=info, 1=debug, 2=trace)")
	return v.BindPFlags(fs)
}

// Resolve unmarshals and validates the effective configuration.
func Resolve(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for values no command could work with.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if errs := validation.IsDNS1123Label(c.KedaNamespace); len(errs) > 0 {
		return fmt.Errorf("invalid keda-namespace %q: %s", c.KedaNamespace, errs[0])
	}
	if c.LogLevel < 0 || c.LogLevel > 2 {
		return fmt.Errorf("log-level must be between 0 and 2, got %d", c.LogLevel)
	}
	return nil
}
