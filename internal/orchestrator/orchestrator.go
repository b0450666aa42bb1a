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

// Package orchestrator sequences a deployment: validate the application
// description, derive its manifests, and apply them in dependency order.
// On failure it stops where it is; objects applied before the failure are
// reported, never rolled back.
package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"

	"github.com/scalemesh/kedactl/internal/appconfig"
	"github.com/scalemesh/kedactl/internal/cluster"
	"github.com/scalemesh/kedactl/internal/manifest"
)

// Step names a phase of an orchestrated operation. A failed operation reports
// the step it stopped at.
type Step string

const (
	StepValidating       Step = "Validating"
	StepBuilding         Step = "Building"
	StepApplyingWorkload Step = "ApplyingWorkload"
	StepApplyingService  Step = "ApplyingService"
	StepApplyingPolicy   Step = "ApplyingPolicy"
	StepDone             Step = "Done"

	// Health check steps.
	StepReadingWorkload Step = "ReadingWorkload"
	StepListingPods     Step = "ListingPods"
)

// StepError reports the step an operation failed at, the objects that were
// already applied when it failed, and the underlying cause. Partial
// application is reported, not undone: the operator decides whether to
// re-apply or clean up.
type StepError struct {
	Step    Step
	Applied []cluster.AppliedObject
	Err     error
}

func (e *StepError) Error() string {
	if len(e.Applied) == 0 {
		return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
	}
	names := make([]string, len(e.Applied))
	for i, obj := range e.Applied {
		names[i] = fmt.Sprintf("%s %s/%s", obj.Kind, obj.Namespace, obj.Name)
	}
	return fmt.Sprintf("step %s failed: %v (already applied: %s)", e.Step, e.Err, strings.Join(names, ", "))
}

func (e *StepError) Unwrap() error { return e.Err }

// ScalingSummary reports the resolved scaling bounds of a deployment.
type ScalingSummary struct {
	MinReplicas int32  `json:"min_replicas"`
	MaxReplicas int32  `json:"max_replicas"`
	ScalerType  string `json:"scaler_type"`
}

// Result describes a completed deployment.
type Result struct {
	Workload      cluster.AppliedObject `json:"workload"`
	Service       cluster.AppliedObject `json:"service"`
	ScalingPolicy cluster.AppliedObject `json:"scaling_policy"`
	Endpoint      string                `json:"endpoint"`
	Scaling       ScalingSummary        `json:"scaling_config"`
}

// Applier is the slice of the cluster gateway the orchestrator needs.
type Applier interface {
	Apply(ctx context.Context, obj client.Object) (cluster.AppliedObject, error)
	EnsureNamespace(ctx context.Context, name string) error
}

// Orchestrator is the entry point for the deploy use case.
type Orchestrator struct {
	gateway Applier
}

// New returns an Orchestrator that applies objects through gateway.
func New(gateway Applier) *Orchestrator {
	return &Orchestrator{gateway: gateway}
}

// Deploy runs the full sequence for one application: Validating → Building →
// ApplyingWorkload → ApplyingService → ApplyingPolicy. The order is fixed;
// the workload must exist before the policy that targets it. A failure at any
// step stops the sequence and names what was already applied.
func (o *Orchestrator) Deploy(ctx context.Context, raw *appconfig.RawConfig) (*Result, error) {
	logger := ctrl.LoggerFrom(ctx).WithName("orchestrator")

	spec, err := appconfig.Validate(raw)
	if err != nil {
		return nil, &StepError{Step: StepValidating, Err: err}
	}
	logger.Info("validated application config",
		"deployment", spec.Name(),
		"namespace", spec.Namespace(),
		"scaler", spec.Scaler().Kind)

	set := manifest.Build(spec)

	var applied []cluster.AppliedObject

	if err := o.gateway.EnsureNamespace(ctx, spec.Namespace()); err != nil {
		return nil, &StepError{Step: StepApplyingWorkload, Err: err}
	}

	workload, err := o.gateway.Apply(ctx, set.Workload)
	if err != nil {
		return nil, &StepError{Step: StepApplyingWorkload, Applied: applied, Err: err}
	}
	applied = append(applied, workload)

	service, err := o.gateway.Apply(ctx, set.Service)
	if err != nil {
		return nil, &StepError{Step: StepApplyingService, Applied: applied, Err: err}
	}
	applied = append(applied, service)

	policy, err := o.gateway.Apply(ctx, set.ScalingPolicy)
	if err != nil {
		return nil, &StepError{Step: StepApplyingPolicy, Applied: applied, Err: err}
	}

	logger.Info("deployment complete",
		"deployment", spec.Name(),
		"namespace", spec.Namespace(),
		"minReplicas", spec.MinReplicas(),
		"maxReplicas", spec.MaxReplicas())

	return &Result{
		Workload:      workload,
		Service:       service,
		ScalingPolicy: policy,
		Endpoint:      set.Endpoint(),
		Scaling: ScalingSummary{
			MinReplicas: spec.MinReplicas(),
			MaxReplicas: spec.MaxReplicas(),
			ScalerType:  spec.Scaler().Kind,
		},
	}, nil
}

// Render validates the description and returns the derived manifests as a
// multi-document YAML stream without touching the cluster.
func (o *Orchestrator) Render(raw *appconfig.RawConfig) ([]byte, error) {
	spec, err := appconfig.Validate(raw)
	if err != nil {
		return nil, &StepError{Step: StepValidating, Err: err}
	}
	set := manifest.Build(spec)

	var buf bytes.Buffer
	for i, obj := range set.Objects() {
		if i > 0 {
			buf.WriteString("---\n")
		}
		data, err := yaml.Marshal(obj)
		if err != nil {
			return nil, &StepError{Step: StepBuilding, Err: err}
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}
