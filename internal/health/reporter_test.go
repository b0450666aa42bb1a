package health_test

import (
	"context"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/scalemesh/kedactl/internal/cluster"
	"github.com/scalemesh/kedactl/internal/health"
	"github.com/scalemesh/kedactl/internal/orchestrator"
)

const testNamespace = "default"

func makeDeployment(name string, desired, available, ready int32) *appsv1.Deployment {
	labels := map[string]string{"app": name}
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: testNamespace, Labels: labels},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(desired),
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec:       corev1.PodSpec{Containers: []corev1.Container{{Name: name, Image: "img"}}},
			},
		},
		Status: appsv1.DeploymentStatus{
			Replicas:          desired,
			AvailableReplicas: available,
			ReadyReplicas:     ready,
		},
	}
}

func makePod(name, app string, phase corev1.PodPhase, ready bool) *corev1.Pod {
	readyStatus := corev1.ConditionFalse
	if ready {
		readyStatus = corev1.ConditionTrue
	}
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: testNamespace,
			Labels:    map[string]string{"app": app},
		},
		Status: corev1.PodStatus{
			Phase: phase,
			Conditions: []corev1.PodCondition{
				{Type: corev1.PodScheduled, Status: corev1.ConditionTrue},
				{Type: corev1.PodReady, Status: readyStatus},
			},
		},
	}
}

func newReporter(objs ...client.Object) *health.Reporter {
	scheme, err := cluster.NewScheme()
	Expect(err).NotTo(HaveOccurred())
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(objs...).Build()
	return health.New(cluster.NewWithClient(c, cluster.Options{}))
}

var _ = Describe("Reporter.CheckHealth", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("reports a running deployment with its pods", func() {
		r := newReporter(
			makeDeployment("my-app", 2, 2, 1),
			makePod("my-app-b", "my-app", corev1.PodRunning, false),
			makePod("my-app-a", "my-app", corev1.PodRunning, true),
			makePod("other", "other-app", corev1.PodRunning, true),
		)

		snapshot, err := r.CheckHealth(ctx, "my-app", testNamespace)
		Expect(err).NotTo(HaveOccurred())

		Expect(snapshot.DeploymentName).To(Equal("my-app"))
		Expect(snapshot.Replicas).To(Equal(int32(2)))
		Expect(snapshot.AvailableReplicas).To(Equal(int32(2)))
		Expect(snapshot.ReadyReplicas).To(Equal(int32(1)))

		// sorted by pod name, only this app's pods
		Expect(snapshot.PodStatuses).To(HaveLen(2))
		Expect(snapshot.PodStatuses[0].Name).To(Equal("my-app-a"))
		Expect(snapshot.PodStatuses[0].Ready).To(BeTrue())
		Expect(snapshot.PodStatuses[1].Name).To(Equal("my-app-b"))
		Expect(snapshot.PodStatuses[1].Ready).To(BeFalse())
		Expect(snapshot.PodStatuses[0].Phase).To(Equal("Running"))
		Expect(snapshot.PodStatuses[0].Conditions).To(ContainElement(health.PodCondition{Type: "Ready", Status: "True"}))
	})

	It("distinguishes scaled-to-zero from not existing", func() {
		r := newReporter(makeDeployment("my-app", 0, 0, 0))

		snapshot, err := r.CheckHealth(ctx, "my-app", testNamespace)
		Expect(err).NotTo(HaveOccurred())
		Expect(snapshot.Replicas).To(BeZero())
		Expect(snapshot.PodStatuses).To(BeEmpty())
	})

	It("fails with NotFound for a nonexistent deployment", func() {
		r := newReporter()

		snapshot, err := r.CheckHealth(ctx, "ghost", testNamespace)
		Expect(err).To(HaveOccurred())
		Expect(snapshot).To(BeNil())
		Expect(cluster.IsNotFound(err)).To(BeTrue())

		var stepErr *orchestrator.StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Step).To(Equal(orchestrator.StepReadingWorkload))
	})

	It("serializes with the documented field names", func() {
		r := newReporter(makeDeployment("my-app", 0, 0, 0))

		snapshot, err := r.CheckHealth(ctx, "my-app", testNamespace)
		Expect(err).NotTo(HaveOccurred())

		data, err := json.Marshal(snapshot)
		Expect(err).NotTo(HaveOccurred())

		var raw map[string]any
		Expect(json.Unmarshal(data, &raw)).To(Succeed())
		for _, key := range []string{"deployment_name", "namespace", "replicas", "available_replicas", "ready_replicas", "pod_statuses"} {
			Expect(raw).To(HaveKey(key))
		}
	})
})
