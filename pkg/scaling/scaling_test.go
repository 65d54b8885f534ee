package scaling_test

import (
	"testing"

	g "github.com/onsi/gomega"

	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/scaling"
)

func TestOrder_startsAtSmallestDimension(t *testing.T) {
	g.RegisterTestingT(t)

	vars := []scaling.Variable{
		scaling.Vector([]string{"px", "py", "pz"}, []int{2, 1, 2}),
	}

	order, err := scaling.Order(vars, "px,py,pz")

	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(order).To(g.Equal([]int{1, 2, 0}))
}

func TestStrongScaling(t *testing.T) {
	g.RegisterTestingT(t)

	out, err := scaling.StrongScaling([]scaling.Variable{
		scaling.Vector([]string{"px", "py", "pz"}, []int{2, 2, 2}),
	}, 2, 4)

	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(out["px"]).To(g.Equal([]int{2, 4, 4, 4}))
	g.Expect(out["py"]).To(g.Equal([]int{2, 2, 4, 4}))
	g.Expect(out["pz"]).To(g.Equal([]int{2, 2, 2, 4}))
}

func TestWeakScaling_followsResourceOrder(t *testing.T) {
	g.RegisterTestingT(t)

	out, err := scaling.WeakScaling(
		[]scaling.Variable{scaling.Vector([]string{"px", "py", "pz"}, []int{2, 1, 1})},
		[]scaling.Variable{scaling.Vector([]string{"nx", "ny", "nz"}, []int{10, 10, 10})},
		2, 3)

	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(out["px"]).To(g.Equal([]int{2, 2, 2}))
	g.Expect(out["py"]).To(g.Equal([]int{1, 2, 2}))
	g.Expect(out["pz"]).To(g.Equal([]int{1, 1, 2}))
	g.Expect(out["nx"]).To(g.Equal([]int{10, 10, 10}))
	g.Expect(out["ny"]).To(g.Equal([]int{10, 20, 20}))
	g.Expect(out["nz"]).To(g.Equal([]int{10, 10, 20}))
}

func TestThroughputScaling_scalars(t *testing.T) {
	g.RegisterTestingT(t)

	out, err := scaling.ThroughputScaling([]scaling.Variable{scaling.Scalar("n", 512)}, 4, 3)

	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(out["n"]).To(g.Equal([]int{512, 2048, 8192}))
}

func TestScale_singleIteration(t *testing.T) {
	g.RegisterTestingT(t)

	out, err := scaling.Scale([]scaling.Variable{scaling.Scalar("n_ranks", 8)}, 2, 1, "")

	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(out["n_ranks"]).To(g.Equal([]int{8}))

	empty, err := scaling.Scale(nil, 2, 4, "")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(empty).To(g.BeEmpty())
}

func TestScale_errors(t *testing.T) {
	g.RegisterTestingT(t)

	_, err := scaling.Scale([]scaling.Variable{scaling.Scalar("n", 1)}, 2, 2, "m")
	g.Expect(err).To(g.MatchError(bperrors.ErrInvalidScaling))

	_, err = scaling.Scale([]scaling.Variable{scaling.Vector([]string{"a", "b"}, []int{1})}, 2, 2, "")
	g.Expect(err).To(g.MatchError(g.ContainSubstring("does not match")))

	_, err = scaling.Scale([]scaling.Variable{
		scaling.Vector([]string{"a", "b"}, []int{1, 1}),
		scaling.Vector([]string{"c", "d", "e"}, []int{1, 1, 1}),
	}, 2, 2, "")
	g.Expect(err).To(g.MatchError(g.ContainSubstring("different dimensions")))

	_, err = scaling.Scale([]scaling.Variable{scaling.Scalar("n", 1)}, 0, 2, "")
	g.Expect(err).To(g.MatchError(bperrors.ErrInvalidScaling))
}
