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

// Package installer bootstraps the KEDA operator onto a cluster through
// the helm CLI and verifies the operator came up.
package installer

import (
	"context"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/scalemesh/kedactl/internal/logging"
)

const (
	// DefaultNamespace is where the KEDA release is installed.
	DefaultNamespace = "keda"

	releaseName   = "keda"
	chartRepoName = "kedacore"
	chartRepoURL  = "https://kedacore.github.io/charts"
	chartRef      = "kedacore/keda"

	operatorAppLabel = "app"
	operatorAppValue = "keda-operator"
)

// Install steps, reported through InstallError.
const (
	StepHelmCheck  = "checking helm"
	StepRepoAdd    = "adding chart repository"
	StepRepoUpdate = "updating chart repositories"
	StepInstall    = "installing keda release"
	StepVerify     = "verifying keda operator"
)

// InstallError reports which bootstrap step failed, with the command
// output the underlying tool produced.
type InstallError struct {
	Step   string
	Output string
	Err    error
}

func (e *InstallError) Error() string {
	msg := fmt.Sprintf("install failed while %s: %v", e.Step, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *InstallError) Unwrap() error { return e.Err }

// PodLister reads pods from the cluster, satisfied by cluster.Gateway.
type PodLister interface {
	ListPods(ctx context.Context, namespace string, selector map[string]string) ([]corev1.Pod, error)
}

// Installer drives the helm-based KEDA bootstrap.
type Installer struct {
	runner    CommandRunner
	pods      PodLister
	namespace string
}

// Options configures an Installer.
type Options struct {
	// Namespace for the KEDA release. Defaults to DefaultNamespace.
	Namespace string
}

// New returns an Installer that shells out through runner and verifies the
// operator through pods.
func New(runner CommandRunner, pods PodLister, opts Options) *Installer {
	ns := opts.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	return &Installer{runner: runner, pods: pods, namespace: ns}
}

// EnsureInstalled makes sure helm is available, the KEDA chart is released
// into the target namespace, and the operator pod is Running. It is
// idempotent: an existing release is left untouched.
func (i *Installer) EnsureInstalled(ctx context.Context) error {
	logger := ctrl.LoggerFrom(ctx)

	out, err := i.runner.RunCommand(ctx, "helm", "version", "--short")
	if err != nil {
		return &InstallError{Step: StepHelmCheck, Output: out,
			Err: fmt.Errorf("helm is not available on PATH: %w", err)}
	}
	logger.V(logging.DEBUG).Info("helm detected", "version", strings.TrimSpace(out))

	out, err = i.runner.RunCommand(ctx, "helm", "repo", "add", chartRepoName, chartRepoURL, "--force-update")
	if err != nil {
		return &InstallError{Step: StepRepoAdd, Output: out, Err: err}
	}
	out, err = i.runner.RunCommand(ctx, "helm", "repo", "update")
	if err != nil {
		return &InstallError{Step: StepRepoUpdate, Output: out, Err: err}
	}

	if _, err := i.runner.RunCommand(ctx, "helm", "status", releaseName, "--namespace", i.namespace); err == nil {
		logger.Info("keda release already present, skipping install", "namespace", i.namespace)
	} else {
		logger.Info("installing keda release", "namespace", i.namespace, "chart", chartRef)
		out, err = i.runner.RunCommand(ctx, "helm", "upgrade", "--install", releaseName, chartRef,
			"--namespace", i.namespace, "--create-namespace", "--wait")
		if err != nil {
			return &InstallError{Step: StepInstall, Output: out, Err: err}
		}
	}

	return i.verifyOperator(ctx)
}

func (i *Installer) verifyOperator(ctx context.Context) error {
	logger := ctrl.LoggerFrom(ctx)

	pods, err := i.pods.ListPods(ctx, i.namespace, map[string]string{operatorAppLabel: operatorAppValue})
	if err != nil {
		return &InstallError{Step: StepVerify, Err: err}
	}
	if len(pods) == 0 {
		return &InstallError{Step: StepVerify,
			Err: fmt.Errorf("no %s pod found in namespace %q", operatorAppValue, i.namespace)}
	}
	for _, pod := range pods {
		if pod.Status.Phase != corev1.PodRunning {
			return &InstallError{Step: StepVerify,
				Err: fmt.Errorf("pod %q is in phase %s, want Running", pod.Name, pod.Status.Phase)}
		}
	}
	logger.Info("keda operator is running", "namespace", i.namespace, "pods", len(pods))
	return nil
}
