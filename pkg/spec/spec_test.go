package spec_test

import (
	"errors"
	"testing"

	g "github.com/onsi/gomega"

	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/spec"
)

func TestParse_attachedVariants(t *testing.T) {
	g.RegisterTestingT(t)

	s, err := spec.Parse([]string{"amg2023+cuda~openmp", "+strong", "caliper=mpi,time", "n_ranks=8"})

	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(s.Name).To(g.Equal("amg2023"))
	g.Expect(s.Bool("cuda")).To(g.BeTrue())
	g.Expect(s.Bool("openmp")).To(g.BeFalse())
	g.Expect(s.Satisfies("~openmp")).To(g.BeTrue())
	g.Expect(s.Satisfies("+strong")).To(g.BeTrue())
	g.Expect(s.Satisfies("+weak")).To(g.BeFalse())
	g.Expect(s.Satisfies("caliper=time")).To(g.BeTrue())
	g.Expect(s.Values("caliper")).To(g.Equal([]string{"mpi", "time"}))
	g.Expect(s.Value("n_ranks")).To(g.Equal("8"))
}

func TestParse_errors(t *testing.T) {
	g.RegisterTestingT(t)

	_, err := spec.Parse(nil)
	g.Expect(err).To(g.MatchError(bperrors.ErrSpecRequired))

	_, err = spec.Parse([]string{"saxpy", "+openmp", "openmp=false"})
	g.Expect(err).To(g.MatchError(bperrors.ErrDuplicateVariant))

	_, err = spec.Parse([]string{"saxpy", "caliper="})
	g.Expect(err).To(g.MatchError(bperrors.ErrInvalidVariantValue))

	_, err = spec.Parse([]string{"saxpy", "openmp"})
	g.Expect(err).To(g.MatchError(bperrors.ErrInvalidVariantValue))
}

func TestString_canonical(t *testing.T) {
	g.RegisterTestingT(t)

	s := spec.MustParse("saxpy n=512 +openmp caliper=time ~cuda")

	g.Expect(s.String()).To(g.Equal("saxpy~cuda+openmp caliper=time n=512"))

	again := spec.MustParse(s.String())
	g.Expect(again.Variants).To(g.Equal(s.Variants))
}

func TestValidate(t *testing.T) {
	g.RegisterTestingT(t)

	defs := []spec.VariantDef{
		spec.BoolVariant("openmp", false, "Build with OpenMP"),
		{Name: "version", Default: "latest", Values: []string{"latest", "1.0"}},
		{Name: "scaling-factor", Default: "2", Values: spec.IntValues},
	}

	s := spec.MustParse("saxpy +openmp version=2.0 scaling-factor=x colour=red n_ranks=4")
	err := s.Validate(defs, func(key string) bool { return key == "n_ranks" })

	g.Expect(err).To(g.HaveOccurred())
	g.Expect(errors.Is(err, bperrors.ErrUnknownVariant)).To(g.BeTrue())
	g.Expect(errors.Is(err, bperrors.ErrInvalidVariantValue)).To(g.BeTrue())
	g.Expect(err.Error()).To(g.ContainSubstring("colour"))
	g.Expect(err.Error()).To(g.ContainSubstring("version=2.0"))
	g.Expect(err.Error()).To(g.ContainSubstring("scaling-factor=x"))
	g.Expect(err.Error()).NotTo(g.ContainSubstring("n_ranks"))

	ok := spec.MustParse("saxpy +openmp")
	ok.ApplyDefaults(defs)
	g.Expect(ok.Validate(defs, nil)).To(g.Succeed())
	g.Expect(ok.Value("version")).To(g.Equal("latest"))

	n, set, err := ok.Int("scaling-factor")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(set).To(g.BeTrue())
	g.Expect(n).To(g.Equal(2))
}
