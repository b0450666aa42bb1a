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

// Package health projects the live state of a deployment into a point-in-time
// snapshot. Snapshots are never cached; every check reads the cluster fresh.
package health

import (
	"context"
	"sort"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/scalemesh/kedactl/internal/logging"
	"github.com/scalemesh/kedactl/internal/manifest"
	"github.com/scalemesh/kedactl/internal/orchestrator"
)

// PodCondition is one observed pod condition.
type PodCondition struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// PodStatus is the health record for a single pod.
type PodStatus struct {
	Name       string         `json:"pod_name"`
	Phase      string         `json:"phase"`
	Ready      bool           `json:"ready"`
	Conditions []PodCondition `json:"conditions,omitempty"`
}

// Snapshot is a point-in-time view of a deployment's health. A deployment
// scaled to zero yields Replicas=0 with an empty pod list; that is a real
// state, distinct from the deployment not existing at all.
type Snapshot struct {
	DeploymentName    string      `json:"deployment_name"`
	Namespace         string      `json:"namespace"`
	Replicas          int32       `json:"replicas"`
	AvailableReplicas int32       `json:"available_replicas"`
	ReadyReplicas     int32       `json:"ready_replicas"`
	PodStatuses       []PodStatus `json:"pod_statuses"`
}

// WorkloadReader is the slice of the cluster gateway the reporter needs.
type WorkloadReader interface {
	GetWorkload(ctx context.Context, name, namespace string) (*appsv1.Deployment, error)
	ListPods(ctx context.Context, namespace string, selector map[string]string) ([]corev1.Pod, error)
}

// Reporter builds health snapshots for deployments.
type Reporter struct {
	gateway WorkloadReader
}

// New returns a Reporter reading through gateway.
func New(gateway WorkloadReader) *Reporter {
	return &Reporter{gateway: gateway}
}

// CheckHealth reads the named workload and its pods and returns a fresh
// snapshot. A missing deployment fails with the cluster NotFound error
// rather than returning a zero-valued snapshot. Reads are not retried; the
// caller decides whether a failed read is worth repeating.
func (r *Reporter) CheckHealth(ctx context.Context, name, namespace string) (*Snapshot, error) {
	deploy, err := r.gateway.GetWorkload(ctx, name, namespace)
	if err != nil {
		return nil, &orchestrator.StepError{Step: orchestrator.StepReadingWorkload, Err: err}
	}

	pods, err := r.gateway.ListPods(ctx, namespace, map[string]string{manifest.AppLabel: name})
	if err != nil {
		return nil, &orchestrator.StepError{Step: orchestrator.StepListingPods, Err: err}
	}

	snapshot := &Snapshot{
		DeploymentName:    name,
		Namespace:         namespace,
		Replicas:          deploy.Status.Replicas,
		AvailableReplicas: deploy.Status.AvailableReplicas,
		ReadyReplicas:     deploy.Status.ReadyReplicas,
		PodStatuses:       podStatuses(pods),
	}

	ctrl.LoggerFrom(ctx).V(logging.DEBUG).Info("health snapshot taken",
		"deployment", name,
		"namespace", namespace,
		"replicas", snapshot.Replicas,
		"ready", snapshot.ReadyReplicas,
		"pods", len(snapshot.PodStatuses))
	return snapshot, nil
}

// podStatuses projects the pod list into status records, sorted by pod name
// so snapshot output is stable.
func podStatuses(pods []corev1.Pod) []PodStatus {
	out := make([]PodStatus, 0, len(pods))
	for i := range pods {
		pod := &pods[i]
		status := PodStatus{
			Name:  pod.Name,
			Phase: string(pod.Status.Phase),
			Ready: isPodReady(pod),
		}
		for _, cond := range pod.Status.Conditions {
			status.Conditions = append(status.Conditions, PodCondition{
				Type:   string(cond.Type),
				Status: string(cond.Status),
			})
		}
		out = append(out, status)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func isPodReady(pod *corev1.Pod) bool {
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
