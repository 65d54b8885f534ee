package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	g "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"benchpark/pkg/app"
	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/experiment"
	"benchpark/pkg/metrics"
	"benchpark/pkg/ports"
	"benchpark/pkg/system"
)

const workspaceID = "0b6b6bd4-8a3c-4d8e-9d0f-3f7c9f1c2a11"

type fixedID struct{}

func (fixedID) GenerateRandom() (string, error) { return workspaceID, nil }

func newApp(t *testing.T) (*app.App, *ports.Collection) {
	t.Helper()

	p := &ports.Collection{
		Benchmarks:        experiment.DefaultCatalog(),
		Systems:           system.DefaultCatalog(),
		IdentifierService: fixedID{},
		FileSystem:        afero.NewMemMapFs(),
		Metrics:           metrics.New(),
		Clock: func() time.Time {
			return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		},
	}

	return app.New(&app.Config{}, p), p
}

func TestInitExperiment(t *testing.T) {
	g.RegisterTestingT(t)

	a, p := newApp(t)
	ctx := context.Background()

	res, err := a.InitExperiment(ctx, "/exp/saxpy", strings.Fields("saxpy +openmp caliper=time"))
	g.Expect(err).NotTo(g.HaveOccurred())

	g.Expect(res.Files).To(g.ConsistOf("/exp/saxpy/experiment.yaml", "/exp/saxpy/ramble.yaml", "/exp/saxpy/execution_template.tpl"))
	g.Expect(res.Experiments).To(g.HaveLen(4))
	g.Expect(res.Spec).To(g.HavePrefix("saxpy+openmp"))

	record, err := afero.ReadFile(p.FileSystem, "/exp/saxpy/experiment.yaml")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(string(record)).To(g.ContainSubstring("caliper=time"))

	doc, err := afero.ReadFile(p.FileSystem, "/exp/saxpy/ramble.yaml")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(string(doc)).To(g.ContainSubstring("saxpy_openmp_512_8ranks"))
	g.Expect(string(doc)).To(g.ContainSubstring("CALI_CONFIG"))

	g.Expect(testutil.ToFloat64(p.Metrics.ArtifactsWritten.WithLabelValues("experiment-init"))).To(g.Equal(3.0))

	_, err = a.InitExperiment(ctx, "/exp/saxpy", []string{"saxpy"})
	g.Expect(errors.Is(err, bperrors.ErrDestinationNotEmpty)).To(g.BeTrue())

	_, err = a.InitExperiment(ctx, "/exp/hpl", []string{"hpl"})
	g.Expect(errors.Is(err, bperrors.ErrUnknownBenchmark)).To(g.BeTrue())

	_, err = a.InitExperiment(ctx, "/exp/bad", strings.Fields("saxpy caliper=cuda"))
	g.Expect(errors.Is(err, bperrors.ErrInvalidModifier)).To(g.BeTrue())
}

func TestInitSystem(t *testing.T) {
	g.RegisterTestingT(t)

	a, p := newApp(t)

	res, err := a.InitSystem(context.Background(), "/sys/tioga", []string{"tioga"})
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(res.Files).To(g.HaveLen(3))

	desc, err := system.Load(p.FileSystem, "/sys/tioga")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(desc.Scheduler).To(g.Equal("flux"))

	_, err = a.InitSystem(context.Background(), "/sys/x", []string{"frontier"})
	g.Expect(errors.Is(err, bperrors.ErrUnknownSystem)).To(g.BeTrue())
}

func TestSetup(t *testing.T) {
	g.RegisterTestingT(t)

	a, p := newApp(t)
	ctx := context.Background()

	_, err := a.InitExperiment(ctx, "/exp", strings.Fields("saxpy +rocm"))
	g.Expect(err).NotTo(g.HaveOccurred())

	_, err = a.InitSystem(ctx, "/sys", []string{"tioga"})
	g.Expect(err).NotTo(g.HaveOccurred())

	res, err := a.Setup(ctx, "/exp", "/sys", "/ws")
	g.Expect(err).NotTo(g.HaveOccurred())

	g.Expect(res.WorkspaceID).To(g.Equal(workspaceID))
	g.Expect(res.Experiments).To(g.HaveLen(4))
	g.Expect(res.Files).To(g.ContainElements(
		"/ws/configs/ramble.yaml",
		"/ws/configs/variables.yaml",
		"/ws/configs/software.yaml",
		"/ws/configs/execution_template.tpl",
		"/ws/manifest.yaml",
	))

	script, err := afero.ReadFile(p.FileSystem, "/ws/experiments/saxpy/problem/saxpy_rocm_128_1gpu/execute_experiment")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(string(script)).To(g.HavePrefix("#!/bin/bash\n# flux: -N 1\n# flux: -t 120m\n"))
	g.Expect(string(script)).To(g.ContainSubstring("cd /ws/experiments/saxpy/problem/saxpy_rocm_128_1gpu\n"))
	g.Expect(string(script)).To(g.ContainSubstring("flux run -N 1 -n 1 -c 64 -g 1 saxpy -n 128"))

	info, err := p.FileSystem.Stat("/ws/experiments/saxpy/problem/saxpy_rocm_128_1gpu/execute_experiment")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(info.Mode().Perm()).To(g.BeEquivalentTo(0o755))

	rambleDoc, err := afero.ReadFile(p.FileSystem, "/ws/configs/ramble.yaml")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(string(rambleDoc)).To(g.ContainSubstring("./configs/variables.yaml"))
	g.Expect(string(rambleDoc)).To(g.ContainSubstring("flux run -N 1 -n 1 -c 64 -g 1"))

	data, err := afero.ReadFile(p.FileSystem, "/ws/manifest.yaml")
	g.Expect(err).NotTo(g.HaveOccurred())

	var m struct {
		WorkspaceID string `yaml:"workspace_id"`
		Artifacts   []struct {
			Path   string `yaml:"path"`
			Digest string `yaml:"digest"`
		} `yaml:"artifacts"`
	}
	g.Expect(yaml.Unmarshal(data, &m)).To(g.Succeed())
	g.Expect(m.WorkspaceID).To(g.Equal(workspaceID))
	g.Expect(m.Artifacts).To(g.HaveLen(8))
	g.Expect(m.Artifacts[0].Path).To(g.Equal("configs/ramble.yaml"))
	g.Expect(m.Artifacts[0].Digest).To(g.HavePrefix("sha256:"))

	g.Expect(testutil.ToFloat64(p.Metrics.ExperimentsGenerated.WithLabelValues("saxpy"))).To(g.Equal(4.0))
	g.Expect(testutil.ToFloat64(p.Metrics.ArtifactsWritten.WithLabelValues("setup"))).To(g.Equal(9.0))

	_, err = a.Setup(ctx, "/exp", "/sys", "/ws")
	g.Expect(errors.Is(err, bperrors.ErrDestinationNotEmpty)).To(g.BeTrue())
}

func TestSetup_overAllocation(t *testing.T) {
	g.RegisterTestingT(t)

	a, p := newApp(t)
	ctx := context.Background()

	_, err := a.InitExperiment(ctx, "/exp", strings.Fields("saxpy +openmp n_nodes=1 n_threads_per_proc=16"))
	g.Expect(err).NotTo(g.HaveOccurred())

	_, err = a.InitSystem(ctx, "/sys", []string{"dane"})
	g.Expect(err).NotTo(g.HaveOccurred())

	_, err = a.Setup(ctx, "/exp", "/sys", "/ws")
	g.Expect(errors.Is(err, bperrors.ErrOverAllocation)).To(g.BeTrue())

	var over bperrors.OverAllocationError
	g.Expect(errors.As(err, &over)).To(g.BeTrue())
	g.Expect(over.Requested).To(g.Equal(int64(128)))
	g.Expect(over.Available).To(g.Equal(int64(112)))

	g.Expect(testutil.ToFloat64(p.Metrics.AllocationFailures.WithLabelValues("saxpy"))).To(g.Equal(4.0))

	exists, err := afero.DirExists(p.FileSystem, "/ws")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(exists).To(g.BeFalse())
}

func TestSetup_missingDescriptions(t *testing.T) {
	g.RegisterTestingT(t)

	a, _ := newApp(t)
	ctx := context.Background()

	_, err := a.Setup(ctx, "/nowhere", "/sys", "/ws")
	g.Expect(errors.Is(err, bperrors.ErrExperimentDescRequired)).To(g.BeTrue())

	_, err = a.InitExperiment(ctx, "/exp", []string{"saxpy"})
	g.Expect(err).NotTo(g.HaveOccurred())

	_, err = a.Setup(ctx, "/exp", "/nowhere", "/ws")
	g.Expect(errors.Is(err, bperrors.ErrSystemDescRequired)).To(g.BeTrue())
}

func TestList(t *testing.T) {
	g.RegisterTestingT(t)

	a, _ := newApp(t)
	ctx := context.Background()

	benchmarks, err := a.List(ctx, ports.ListBenchmarks)
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(benchmarks).To(g.HaveLen(2))
	g.Expect(benchmarks[0]).To(g.HavePrefix("amg2023: "))

	systems, err := a.List(ctx, ports.ListSystems)
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(systems).To(g.HaveLen(3))

	modifiers, err := a.List(ctx, ports.ListModifiers)
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(modifiers).To(g.HaveLen(8))

	_, err = a.List(ctx, "compilers")
	g.Expect(errors.Is(err, bperrors.ErrUnknownListKind)).To(g.BeTrue())
}
