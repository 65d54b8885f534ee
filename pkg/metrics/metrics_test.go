package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	g "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"benchpark/pkg/metrics"
)

func TestRecorder(t *testing.T) {
	g.RegisterTestingT(t)

	r := metrics.New()

	r.ExperimentsGenerated.WithLabelValues("saxpy").Add(4)
	r.AllocationFailures.WithLabelValues("amg2023").Inc()
	r.ArtifactsWritten.WithLabelValues("setup").Add(7)
	r.Observe("setup", time.Now())

	g.Expect(testutil.ToFloat64(r.ExperimentsGenerated.WithLabelValues("saxpy"))).To(g.Equal(4.0))
	g.Expect(testutil.ToFloat64(r.AllocationFailures.WithLabelValues("amg2023"))).To(g.Equal(1.0))
	g.Expect(testutil.CollectAndCount(r.OperationDuration)).To(g.Equal(1))

	path := filepath.Join(t.TempDir(), "benchpark.prom")
	g.Expect(r.WriteFile(path)).To(g.Succeed())

	data, err := os.ReadFile(path)
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(string(data)).To(g.ContainSubstring(`benchpark_artifacts_written_total{operation="setup"} 7`))
}

func TestRecorder_isolated(t *testing.T) {
	g.RegisterTestingT(t)

	a, b := metrics.New(), metrics.New()
	a.ArtifactsWritten.WithLabelValues("setup").Inc()

	g.Expect(testutil.CollectAndCount(b.ArtifactsWritten)).To(g.Equal(0))
}
