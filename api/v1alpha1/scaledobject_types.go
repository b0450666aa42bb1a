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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ScaledObjectSpec defines the desired scaling behavior for a target workload.
// Field names and semantics mirror the KEDA ScaledObject CRD so that objects
// built from these types are accepted verbatim by the cluster-side operator.
type ScaledObjectSpec struct {
	// ScaleTargetRef references the workload to be scaled.
	ScaleTargetRef ScaleTarget `json:"scaleTargetRef"`

	// MinReplicaCount is the lower scale bound. Zero enables scale-to-zero.
	// +optional
	MinReplicaCount *int32 `json:"minReplicaCount,omitempty"`

	// MaxReplicaCount is the upper scale bound.
	// +optional
	MaxReplicaCount *int32 `json:"maxReplicaCount,omitempty"`

	// Triggers lists the event sources driving scaling decisions.
	Triggers []ScaleTriggers `json:"triggers"`
}

// ScaleTarget identifies the resource the ScaledObject scales.
// Name-only references target a Deployment in the same namespace.
type ScaleTarget struct {
	// Name of the target resource.
	Name string `json:"name"`

	// APIVersion of the target resource.
	// +optional
	APIVersion string `json:"apiVersion,omitempty"`

	// Kind of the target resource. Defaults to Deployment when empty.
	// +optional
	Kind string `json:"kind,omitempty"`
}

// ScaleTriggers describes a single event-source trigger.
// Metadata keys are scaler-specific and passed through to KEDA untouched.
type ScaleTriggers struct {
	// Type is the scaler kind, e.g. "rabbitmq" or "kafka".
	Type string `json:"type"`

	// Metadata carries the scaler-specific configuration.
	Metadata map[string]string `json:"metadata"`

	// AuthenticationRef optionally names a TriggerAuthentication object that
	// holds the credentials the scaler needs. The referenced object is not
	// managed by kedactl.
	// +optional
	AuthenticationRef *AuthenticationRef `json:"authenticationRef,omitempty"`
}

// AuthenticationRef points to a KEDA TriggerAuthentication object.
type AuthenticationRef struct {
	// Name of the TriggerAuthentication object.
	Name string `json:"name"`
}

// ScaledObjectStatus holds the subset of observed state kedactl reads back.
type ScaledObjectStatus struct {
	// Conditions reported by the KEDA operator.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true

// ScaledObject is the client-side schema for the keda.sh ScaledObject resource.
type ScaledObject struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ScaledObjectSpec   `json:"spec,omitempty"`
	Status ScaledObjectStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ScaledObjectList contains a list of ScaledObject resources.
type ScaledObjectList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ScaledObject `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ScaledObject{}, &ScaledObjectList{})
}
