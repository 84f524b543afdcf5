package webui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	batchv1 "k8s.io/api/batch/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	v1 "github.com/thegeeklab/scheduler-kubernetes/api/v1"
	"github.com/thegeeklab/scheduler-kubernetes/internal/scheduler"
)

var _ = Describe("Server", func() {
	var (
		server *Server
		config ServerConfig
		sched  *scheduler.KubernetesScheduler
	)

	BeforeEach(func() {
		scheme := runtime.NewScheme()
		Expect(batchv1.AddToScheme(scheme)).To(Succeed())

		props := v1.SchedulerProperties{Namespace: testNamespace}
		props.Default()

		sched = scheduler.New(fake.NewClientBuilder().WithScheme(scheme).Build(), props)
		config = DefaultServerConfig()
		config.Addr = "127.0.0.1:0"
		server = NewServer(config, sched)
	})

	Describe("NewServer", func() {
		It("should create a new server with default config", func() {
			Expect(NewServer(DefaultServerConfig(), sched)).NotTo(BeNil())
		})

		It("should route API requests", func() {
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedules", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`[]`))
		})
	})

	Describe("Health checks", func() {
		It("should report the server as healthy", func() {
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthzPath, nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should serve single checks", func() {
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthzPath+"/ping", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("Start and Stop", func() {
		It("should start and stop the server", func() {
			Expect(server.Start()).To(Succeed())

			time.Sleep(100 * time.Millisecond)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			Expect(server.Stop(ctx)).To(Succeed())
		})
	})

	Describe("DefaultServerConfig", func() {
		It("should return default server configuration", func() {
			defaultConfig := DefaultServerConfig()

			Expect(defaultConfig.Addr).To(Equal(":8080"))
			Expect(defaultConfig.ReadTimeout).To(Equal(10 * time.Second))
			Expect(defaultConfig.WriteTimeout).To(Equal(30 * time.Second))
			Expect(defaultConfig.IdleTimeout).To(Equal(120 * time.Second))
		})
	})
})
