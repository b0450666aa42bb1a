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

// Package cluster is the single boundary between kedactl and the Kubernetes
// API. The Gateway is a stateless façade: it holds a client and a timeout,
// never caches object state, and maps every API failure into the package's
// error taxonomy.
package cluster

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	kedav1alpha1 "github.com/scalemesh/kedactl/api/v1alpha1"
	"github.com/scalemesh/kedactl/internal/logging"
)

// DefaultTimeout bounds each remote call when Options.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// Options configures a Gateway.
type Options struct {
	// Timeout bounds every remote call. Exceeding it surfaces as Unavailable.
	Timeout time.Duration
}

// AppliedObject identifies an object after a successful apply. It carries
// identity only: applying the same spec twice yields identical values.
type AppliedObject struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// Gateway wraps cluster access for apply, read, and list operations.
type Gateway struct {
	client  client.Client
	timeout time.Duration
}

// NewScheme builds the runtime scheme covering every kind the Gateway touches.
func NewScheme() (*runtime.Scheme, error) {
	scheme := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(scheme); err != nil {
		return nil, fmt.Errorf("registering core types: %w", err)
	}
	if err := kedav1alpha1.AddToScheme(scheme); err != nil {
		return nil, fmt.Errorf("registering keda.sh types: %w", err)
	}
	return scheme, nil
}

// New connects a Gateway to the cluster described by cfg.
func New(cfg *rest.Config, opts Options) (*Gateway, error) {
	scheme, err := NewScheme()
	if err != nil {
		return nil, err
	}
	c, err := client.New(cfg, client.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("creating cluster client: %w", err)
	}
	return NewWithClient(c, opts), nil
}

// NewWithClient wraps an existing client. Used by tests with a fake client.
func NewWithClient(c client.Client, opts Options) *Gateway {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{client: c, timeout: timeout}
}

// Apply creates the object if absent and updates it if its spec changed,
// keyed by name, namespace, and kind. Re-applying an unchanged spec is a
// no-op. Only the kinds kedactl manages are accepted; anything else fails
// with Invalid.
func (g *Gateway) Apply(ctx context.Context, obj client.Object) (AppliedObject, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	kind, mutate, err := mutationFor(obj)
	if err != nil {
		return AppliedObject{}, err
	}

	op, err := controllerutil.CreateOrUpdate(ctx, g.client, obj, mutate)
	if err != nil {
		return AppliedObject{}, wrapError(err, kind, obj.GetName(), obj.GetNamespace())
	}

	ctrl.LoggerFrom(ctx).V(logging.DEBUG).Info("applied object",
		"kind", kind,
		"name", obj.GetName(),
		"namespace", obj.GetNamespace(),
		"operation", op)
	return AppliedObject{Kind: kind, Name: obj.GetName(), Namespace: obj.GetNamespace()}, nil
}

// GetWorkload reads the named Deployment.
func (g *Gateway) GetWorkload(ctx context.Context, name, namespace string) (*appsv1.Deployment, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	deploy := &appsv1.Deployment{}
	key := client.ObjectKey{Namespace: namespace, Name: name}
	if err := g.client.Get(ctx, key, deploy); err != nil {
		return nil, wrapError(err, "Deployment", name, namespace)
	}
	return deploy, nil
}

// ListPods lists the pods in namespace matching the label selector.
func (g *Gateway) ListPods(ctx context.Context, namespace string, selector map[string]string) ([]corev1.Pod, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	podList := &corev1.PodList{}
	if err := g.client.List(ctx, podList,
		client.InNamespace(namespace),
		client.MatchingLabels(selector),
	); err != nil {
		return nil, wrapError(err, "Pod", "", namespace)
	}
	return podList.Items, nil
}

// EnsureNamespace creates the namespace if it does not exist.
func (g *Gateway) EnsureNamespace(ctx context.Context, name string) error {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	ns := &corev1.Namespace{}
	err := g.client.Get(ctx, client.ObjectKey{Name: name}, ns)
	if err == nil {
		return nil
	}
	if classify(err) != NotFound {
		return wrapError(err, "Namespace", name, "")
	}

	ns = &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
	if err := g.client.Create(ctx, ns); err != nil {
		// Lost a race with a concurrent creator; the namespace exists now.
		if classify(err) == Conflict {
			return nil
		}
		return wrapError(err, "Namespace", name, "")
	}
	ctrl.LoggerFrom(ctx).Info("created namespace", "namespace", name)
	return nil
}

func (g *Gateway) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, g.timeout)
}

// mutationFor returns the object's kind and the mutation that reconciles the
// stored object to the desired spec. The desired state is captured before
// CreateOrUpdate overwrites obj with what the cluster currently holds.
func mutationFor(obj client.Object) (string, controllerutil.MutateFn, error) {
	switch o := obj.(type) {
	case *appsv1.Deployment:
		desired := o.DeepCopy()
		return "Deployment", func() error {
			o.Labels = desired.Labels
			o.Spec = desired.Spec
			return nil
		}, nil
	case *corev1.Service:
		desired := o.DeepCopy()
		return "Service", func() error {
			o.Labels = desired.Labels
			// ClusterIP is server-assigned; replacing the whole spec would
			// make re-apply fail on the immutable field.
			o.Spec.Type = desired.Spec.Type
			o.Spec.Selector = desired.Spec.Selector
			o.Spec.Ports = desired.Spec.Ports
			return nil
		}, nil
	case *kedav1alpha1.ScaledObject:
		desired := o.DeepCopy()
		return "ScaledObject", func() error {
			o.Labels = desired.Labels
			o.Spec = desired.Spec
			return nil
		}, nil
	default:
		return "", nil, &Error{
			Kind:       Invalid,
			ObjectKind: fmt.Sprintf("%T", obj),
			Name:       obj.GetName(),
			Namespace:  obj.GetNamespace(),
			Err:        fmt.Errorf("unsupported object type"),
		}
	}
}
