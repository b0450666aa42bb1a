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

// Package appconfig loads and validates the declarative application
// description that drives a deployment. Validation is all-or-nothing: the
// only way to obtain an ApplicationSpec is a successful Validate call, so
// downstream components never see a partially checked document.
package appconfig

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

// RawConfig mirrors the on-disk application description field for field.
// Numeric fields are pointers so a missing field is distinguishable from an
// explicit zero.
type RawConfig struct {
	DeploymentName string            `yaml:"deployment_name"`
	Namespace      string            `yaml:"namespace"`
	Image          string            `yaml:"image"`
	Tag            string            `yaml:"tag"`
	CPURequest     string            `yaml:"cpu_request"`
	CPULimit       string            `yaml:"cpu_limit"`
	MemoryRequest  string            `yaml:"memory_request"`
	MemoryLimit    string            `yaml:"memory_limit"`
	Port           *int32            `yaml:"port"`
	MinReplicas    *int32            `yaml:"min_replicas"`
	MaxReplicas    *int32            `yaml:"max_replicas"`
	ScalerType     string            `yaml:"scaler_type"`
	ScalerConfig   map[string]string `yaml:"scaler_config"`
	ScalerAuthRef  string            `yaml:"scaler_auth_ref"`
	EnvVars        map[string]string `yaml:"env_vars"`
}

// Scaler describes the event source that drives autoscaling. Metadata keys
// are scaler-specific and carried through to the scaling policy untouched.
type Scaler struct {
	// Kind is the scaler type, e.g. "rabbitmq".
	Kind string
	// Metadata is the scaler-specific configuration.
	Metadata map[string]string
	// AuthRef optionally names a TriggerAuthentication object holding the
	// scaler's credentials. Empty when no credentials are needed.
	AuthRef string
}

// ApplicationSpec is a validated, immutable application description.
// All fields are unexported; an ApplicationSpec can only be produced by
// Validate, and accessors return copies of any mutable state.
type ApplicationSpec struct {
	name      string
	namespace string

	imageRepository string
	imageTag        string

	cpuRequest    resource.Quantity
	cpuLimit      resource.Quantity
	memoryRequest resource.Quantity
	memoryLimit   resource.Quantity

	port        int32
	minReplicas int32
	maxReplicas int32

	scaler Scaler
	env    map[string]string
}

// Name returns the deployment name.
func (s *ApplicationSpec) Name() string { return s.name }

// Namespace returns the target namespace ("default" when the document omits it).
func (s *ApplicationSpec) Namespace() string { return s.namespace }

// Image returns the full container image reference, "repository:tag".
func (s *ApplicationSpec) Image() string { return s.imageRepository + ":" + s.imageTag }

// Port returns the container port.
func (s *ApplicationSpec) Port() int32 { return s.port }

// MinReplicas returns the lower replica bound. Zero enables scale-to-zero.
func (s *ApplicationSpec) MinReplicas() int32 { return s.minReplicas }

// MaxReplicas returns the upper replica bound.
func (s *ApplicationSpec) MaxReplicas() int32 { return s.maxReplicas }

// Resources returns the container resource requests and limits.
func (s *ApplicationSpec) Resources() corev1.ResourceRequirements {
	return corev1.ResourceRequirements{
		Requests: corev1.ResourceList{
			corev1.ResourceCPU:    s.cpuRequest.DeepCopy(),
			corev1.ResourceMemory: s.memoryRequest.DeepCopy(),
		},
		Limits: corev1.ResourceList{
			corev1.ResourceCPU:    s.cpuLimit.DeepCopy(),
			corev1.ResourceMemory: s.memoryLimit.DeepCopy(),
		},
	}
}

// Scaler returns the scaler configuration with a copied metadata map.
func (s *ApplicationSpec) Scaler() Scaler {
	out := Scaler{Kind: s.scaler.Kind, AuthRef: s.scaler.AuthRef}
	out.Metadata = make(map[string]string, len(s.scaler.Metadata))
	for k, v := range s.scaler.Metadata {
		out.Metadata[k] = v
	}
	return out
}

// Env returns a copy of the environment variable map.
func (s *ApplicationSpec) Env() map[string]string {
	out := make(map[string]string, len(s.env))
	for k, v := range s.env {
		out[k] = v
	}
	return out
}
