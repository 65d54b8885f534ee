package modifier_test

import (
	"errors"
	"testing"

	g "github.com/onsi/gomega"

	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/modifier"
)

func TestCaliperModes(t *testing.T) {
	g.RegisterTestingT(t)

	g.Expect(modifier.CaliperModes()).To(g.ConsistOf(
		"time", "mpi", "cuda",
		"topdown-counters-all", "topdown-counters-toplevel",
		"topdown-all", "topdown-toplevel",
	))
}

func TestNewCaliper_disabled(t *testing.T) {
	g.RegisterTestingT(t)

	c, err := modifier.NewCaliper([]string{"none"}, "openmp")

	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(c.Enabled()).To(g.BeFalse())
	g.Expect(c.EnvVars()).To(g.BeEmpty())
	g.Expect(c.PackageSpec()).To(g.BeEmpty())
	g.Expect(c.Modifiers()).To(g.Equal([]modifier.Modifier{{Name: "allocation"}}))
}

func TestNewCaliper_mpiAndTime(t *testing.T) {
	g.RegisterTestingT(t)

	c, err := modifier.NewCaliper([]string{"time", "mpi", "time"}, "openmp")

	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(c.Modes()).To(g.Equal([]string{"time", "mpi"}))
	g.Expect(c.EnvVars()).To(g.HaveKeyWithValue("CALI_CONFIG",
		"spot(output={experiment_run_dir}/{experiment_name}.cali,time.exclusive,profile.mpi,mpi.message.size,mpi.message.count)"))
	g.Expect(c.PackageSpec()).To(g.Equal("caliper@main+adiak+mpi"))
	g.Expect(c.Modifiers()).To(g.ContainElement(modifier.Modifier{Name: "caliper", Mode: "mpi"}))
}

func TestNewCaliper_cudaNeedsCudaModel(t *testing.T) {
	g.RegisterTestingT(t)

	_, err := modifier.NewCaliper([]string{"cuda"}, "rocm")
	g.Expect(errors.Is(err, bperrors.ErrInvalidModifier)).To(g.BeTrue())

	c, err := modifier.NewCaliper([]string{"cuda", "topdown-all"}, "cuda")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(c.PackageSpec()).To(g.Equal("caliper@main+adiak+mpi+cuda+papi"))
}

func TestNewCaliper_unknownMode(t *testing.T) {
	g.RegisterTestingT(t)

	_, err := modifier.NewCaliper([]string{"memory"}, "openmp")
	g.Expect(errors.Is(err, bperrors.ErrInvalidVariantValue)).To(g.BeTrue())
}

func TestVariantAndDescribe(t *testing.T) {
	g.RegisterTestingT(t)

	v := modifier.Variant()
	g.Expect(v.Multi).To(g.BeTrue())
	g.Expect(v.Values).To(g.ContainElement("topdown-toplevel"))
	g.Expect(modifier.Describe()).To(g.HaveLen(8))
}
