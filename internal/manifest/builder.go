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

// Package manifest derives the cluster objects for an application from its
// validated spec. Derivation is pure: no cluster access, no randomness, and
// equal inputs always produce equal output.
package manifest

import (
	"fmt"
	"sort"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	kedav1alpha1 "github.com/scalemesh/kedactl/api/v1alpha1"
	"github.com/scalemesh/kedactl/internal/appconfig"
)

const (
	// ServiceSuffix is appended to the deployment name to form the service name.
	ServiceSuffix = "-service"
	// ScalerSuffix is appended to the deployment name to form the ScaledObject name.
	ScalerSuffix = "-scaler"

	// AppLabel selects the application's pods.
	AppLabel = "app"
	// ManagedByLabel marks objects created by this tool.
	ManagedByLabel = "app.kubernetes.io/managed-by"
	// ManagedByValue is the value written to ManagedByLabel.
	ManagedByValue = "kedactl"
)

// ManifestSet is the ordered set of cluster objects that realize one
// application: the workload, its service, and its scaling policy. All three
// share the deployment name and namespace, so the set is addressable as a
// single logical unit.
type ManifestSet struct {
	Workload      *appsv1.Deployment
	Service       *corev1.Service
	ScalingPolicy *kedav1alpha1.ScaledObject
}

// Objects returns the set in apply order. The workload comes first so the
// scaling policy never targets a deployment that does not exist yet.
func (m *ManifestSet) Objects() []client.Object {
	return []client.Object{m.Workload, m.Service, m.ScalingPolicy}
}

// Endpoint returns the cluster-internal address of the application's service.
func (m *ManifestSet) Endpoint() string {
	return fmt.Sprintf("%s.%s.svc.cluster.local:%d",
		m.Service.Name, m.Service.Namespace, m.Service.Spec.Ports[0].Port)
}

// Build derives the ManifestSet for a validated application spec.
// The initial workload replica count equals the spec's minimum bound, so an
// application with min_replicas=0 starts scaled to zero.
func Build(spec *appconfig.ApplicationSpec) *ManifestSet {
	labels := map[string]string{
		AppLabel:       spec.Name(),
		ManagedByLabel: ManagedByValue,
	}
	selector := map[string]string{AppLabel: spec.Name()}

	return &ManifestSet{
		Workload:      buildWorkload(spec, labels, selector),
		Service:       buildService(spec, labels, selector),
		ScalingPolicy: buildScalingPolicy(spec, labels),
	}
}

func buildWorkload(spec *appconfig.ApplicationSpec, labels, selector map[string]string) *appsv1.Deployment {
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      spec.Name(),
			Namespace: spec.Namespace(),
			Labels:    copyLabels(labels),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(spec.MinReplicas()),
			Selector: &metav1.LabelSelector{MatchLabels: selector},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: copyLabels(labels)},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:      spec.Name(),
							Image:     spec.Image(),
							Ports:     []corev1.ContainerPort{{ContainerPort: spec.Port()}},
							Resources: spec.Resources(),
							Env:       buildEnv(spec.Env()),
						},
					},
				},
			},
		},
	}
}

func buildService(spec *appconfig.ApplicationSpec, labels, selector map[string]string) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      spec.Name() + ServiceSuffix,
			Namespace: spec.Namespace(),
			Labels:    copyLabels(labels),
		},
		Spec: corev1.ServiceSpec{
			// Cluster-internal routing only; no external exposure.
			Type:     corev1.ServiceTypeClusterIP,
			Selector: selector,
			Ports: []corev1.ServicePort{
				{
					Port:       spec.Port(),
					TargetPort: intstr.FromInt32(spec.Port()),
				},
			},
		},
	}
}

func buildScalingPolicy(spec *appconfig.ApplicationSpec, labels map[string]string) *kedav1alpha1.ScaledObject {
	scaler := spec.Scaler()
	trigger := kedav1alpha1.ScaleTriggers{
		Type:     scaler.Kind,
		Metadata: scaler.Metadata,
	}
	if scaler.AuthRef != "" {
		trigger.AuthenticationRef = &kedav1alpha1.AuthenticationRef{Name: scaler.AuthRef}
	}

	return &kedav1alpha1.ScaledObject{
		TypeMeta: metav1.TypeMeta{
			APIVersion: kedav1alpha1.GroupVersion.String(),
			Kind:       "ScaledObject",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      spec.Name() + ScalerSuffix,
			Namespace: spec.Namespace(),
			Labels:    copyLabels(labels),
		},
		Spec: kedav1alpha1.ScaledObjectSpec{
			ScaleTargetRef:  kedav1alpha1.ScaleTarget{Name: spec.Name()},
			MinReplicaCount: ptr.To(spec.MinReplicas()),
			MaxReplicaCount: ptr.To(spec.MaxReplicas()),
			Triggers:        []kedav1alpha1.ScaleTriggers{trigger},
		},
	}
}

// buildEnv converts the env map to container env vars, sorted by name so the
// derived manifest is identical across runs.
func buildEnv(env map[string]string) []corev1.EnvVar {
	if len(env) == 0 {
		return nil
	}
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]corev1.EnvVar, 0, len(names))
	for _, name := range names {
		out = append(out, corev1.EnvVar{Name: name, Value: env[name]})
	}
	return out
}

func copyLabels(labels map[string]string) map[string]string {
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}
