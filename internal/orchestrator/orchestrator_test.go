package orchestrator

import (
	"context"
	"errors"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	kedav1alpha1 "github.com/scalemesh/kedactl/api/v1alpha1"
	"github.com/scalemesh/kedactl/internal/appconfig"
	"github.com/scalemesh/kedactl/internal/cluster"
)

// scenarioConfig is the reference deployment from the user documentation:
// scale-to-zero rabbitmq consumer bounded at five replicas.
func scenarioConfig() *appconfig.RawConfig {
	return &appconfig.RawConfig{
		DeploymentName: "my-app",
		Namespace:      "default",
		Image:          "nginxdemos/hello",
		Tag:            "latest",
		CPURequest:     "100m",
		CPULimit:       "500m",
		MemoryRequest:  "128Mi",
		MemoryLimit:    "256Mi",
		Port:           ptr.To(int32(80)),
		MinReplicas:    ptr.To(int32(0)),
		MaxReplicas:    ptr.To(int32(5)),
		ScalerType:     "rabbitmq",
		ScalerConfig: map[string]string{
			"queueName":   "my-queue",
			"queueLength": "5",
			"host":        "rabbitmq.default.svc.cluster.local",
		},
	}
}

func newTestClient(funcs interceptor.Funcs) client.Client {
	scheme, err := cluster.NewScheme()
	Expect(err).NotTo(HaveOccurred())
	return fake.NewClientBuilder().WithScheme(scheme).WithInterceptorFuncs(funcs).Build()
}

var _ = Describe("Orchestrator.Deploy", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("applies workload, service, and scaling policy for a valid config", func() {
		c := newTestClient(interceptor.Funcs{})
		o := New(cluster.NewWithClient(c, cluster.Options{}))

		result, err := o.Deploy(ctx, scenarioConfig())
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Workload).To(Equal(cluster.AppliedObject{Kind: "Deployment", Name: "my-app", Namespace: "default"}))
		Expect(result.Service).To(Equal(cluster.AppliedObject{Kind: "Service", Name: "my-app-service", Namespace: "default"}))
		Expect(result.ScalingPolicy).To(Equal(cluster.AppliedObject{Kind: "ScaledObject", Name: "my-app-scaler", Namespace: "default"}))
		Expect(result.Endpoint).To(Equal("my-app-service.default.svc.cluster.local:80"))
		Expect(result.Scaling).To(Equal(ScalingSummary{MinReplicas: 0, MaxReplicas: 5, ScalerType: "rabbitmq"}))

		deploy := &appsv1.Deployment{}
		Expect(c.Get(ctx, client.ObjectKey{Namespace: "default", Name: "my-app"}, deploy)).To(Succeed())
		Expect(*deploy.Spec.Replicas).To(BeZero(), "min_replicas=0 deploys scaled to zero")

		svc := &corev1.Service{}
		Expect(c.Get(ctx, client.ObjectKey{Namespace: "default", Name: "my-app-service"}, svc)).To(Succeed())
		Expect(svc.Spec.Ports[0].Port).To(Equal(int32(80)))

		so := &kedav1alpha1.ScaledObject{}
		Expect(c.Get(ctx, client.ObjectKey{Namespace: "default", Name: "my-app-scaler"}, so)).To(Succeed())
		Expect(*so.Spec.MinReplicaCount).To(BeZero())
		Expect(*so.Spec.MaxReplicaCount).To(Equal(int32(5)))
		Expect(so.Spec.Triggers).To(HaveLen(1))
		Expect(so.Spec.Triggers[0].Metadata["queueName"]).To(Equal("my-queue"))
		Expect(so.Spec.Triggers[0].Metadata["queueLength"]).To(Equal("5"))
	})

	It("is idempotent across repeated deploys", func() {
		c := newTestClient(interceptor.Funcs{})
		o := New(cluster.NewWithClient(c, cluster.Options{}))

		first, err := o.Deploy(ctx, scenarioConfig())
		Expect(err).NotTo(HaveOccurred())

		second, err := o.Deploy(ctx, scenarioConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("rejects invalid config without any cluster call", func() {
		var calls atomic.Int64
		count := func() {
			calls.Add(1)
		}
		c := newTestClient(interceptor.Funcs{
			Get: func(ctx context.Context, cl client.WithWatch, key client.ObjectKey, obj client.Object, opts ...client.GetOption) error {
				count()
				return cl.Get(ctx, key, obj, opts...)
			},
			Create: func(ctx context.Context, cl client.WithWatch, obj client.Object, opts ...client.CreateOption) error {
				count()
				return cl.Create(ctx, obj, opts...)
			},
			Update: func(ctx context.Context, cl client.WithWatch, obj client.Object, opts ...client.UpdateOption) error {
				count()
				return cl.Update(ctx, obj, opts...)
			},
		})
		o := New(cluster.NewWithClient(c, cluster.Options{}))

		raw := scenarioConfig()
		raw.MaxReplicas = ptr.To(int32(-1))

		_, err := o.Deploy(ctx, raw)
		Expect(err).To(HaveOccurred())

		var stepErr *StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Step).To(Equal(StepValidating))

		var verr *appconfig.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Field).To(Equal("max_replicas"))
		Expect(verr.Rule).To(Equal(appconfig.RuleOutOfRange))

		Expect(calls.Load()).To(BeZero(), "validation failures must never reach the cluster")
	})

	It("stops at the failing step and names what was already applied", func() {
		// Fail service creation; the workload is already applied by then.
		c := newTestClient(interceptor.Funcs{
			Create: func(ctx context.Context, cl client.WithWatch, obj client.Object, opts ...client.CreateOption) error {
				if _, ok := obj.(*corev1.Service); ok {
					return apierrors.NewForbidden(
						schema.GroupResource{Resource: "services"}, obj.GetName(), nil)
				}
				return cl.Create(ctx, obj, opts...)
			},
		})
		o := New(cluster.NewWithClient(c, cluster.Options{}))

		_, err := o.Deploy(ctx, scenarioConfig())
		Expect(err).To(HaveOccurred())

		var stepErr *StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Step).To(Equal(StepApplyingService))
		Expect(stepErr.Applied).To(ConsistOf(
			cluster.AppliedObject{Kind: "Deployment", Name: "my-app", Namespace: "default"},
		))
		Expect(cluster.KindOf(err)).To(Equal(cluster.Forbidden))

		// No rollback: the workload stays.
		deploy := &appsv1.Deployment{}
		Expect(c.Get(ctx, client.ObjectKey{Namespace: "default", Name: "my-app"}, deploy)).To(Succeed())
	})

	It("reports workload and service when the policy apply fails", func() {
		c := newTestClient(interceptor.Funcs{
			Create: func(ctx context.Context, cl client.WithWatch, obj client.Object, opts ...client.CreateOption) error {
				if _, ok := obj.(*kedav1alpha1.ScaledObject); ok {
					return apierrors.NewConflict(
						schema.GroupResource{Group: "keda.sh", Resource: "scaledobjects"}, obj.GetName(), errors.New("modified"))
				}
				return cl.Create(ctx, obj, opts...)
			},
		})
		o := New(cluster.NewWithClient(c, cluster.Options{}))

		_, err := o.Deploy(ctx, scenarioConfig())
		Expect(err).To(HaveOccurred())

		var stepErr *StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Step).To(Equal(StepApplyingPolicy))
		Expect(stepErr.Applied).To(HaveLen(2))
		Expect(err.Error()).To(ContainSubstring("Deployment default/my-app"))
		Expect(err.Error()).To(ContainSubstring("Service default/my-app-service"))
	})

	It("creates the target namespace when absent", func() {
		c := newTestClient(interceptor.Funcs{})
		o := New(cluster.NewWithClient(c, cluster.Options{}))

		raw := scenarioConfig()
		raw.Namespace = "staging"

		_, err := o.Deploy(ctx, raw)
		Expect(err).NotTo(HaveOccurred())

		ns := &corev1.Namespace{}
		Expect(c.Get(ctx, client.ObjectKey{Name: "staging"}, ns)).To(Succeed())
	})
})

var _ = Describe("Orchestrator.Render", func() {
	It("renders the three manifests without cluster access", func() {
		o := New(nil) // nil gateway: Render must never touch it

		out, err := o.Render(scenarioConfig())
		Expect(err).NotTo(HaveOccurred())

		Expect(string(out)).To(ContainSubstring("kind: Deployment"))
		Expect(string(out)).To(ContainSubstring("kind: Service"))
		Expect(string(out)).To(ContainSubstring("kind: ScaledObject"))
		Expect(string(out)).To(ContainSubstring("queueName: my-queue"))
	})

	It("fails validation before rendering", func() {
		o := New(nil)

		raw := scenarioConfig()
		raw.ScalerType = "carrier-pigeon"

		_, err := o.Render(raw)
		Expect(err).To(HaveOccurred())

		var stepErr *StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Step).To(Equal(StepValidating))
	})
})
