package ramble_test

import (
	"testing"

	g "github.com/onsi/gomega"

	"benchpark/pkg/modifier"
	"benchpark/pkg/ramble"
)

func TestMarshal_roundTrip(t *testing.T) {
	g.RegisterTestingT(t)

	doc := &ramble.Document{Ramble: ramble.Spec{
		Include:   []string{"./configs/variables.yaml"},
		Config:    ramble.DefaultConfig(),
		Modifiers: []modifier.Modifier{{Name: "allocation"}, {Name: "caliper", Mode: "time"}},
		Applications: map[string]ramble.Application{
			"saxpy": {Workloads: map[string]ramble.Workload{
				"problem": {
					EnvVars: &ramble.EnvVars{Set: map[string]string{"OMP_NUM_THREADS": "{n_threads_per_proc}"}},
					Experiments: map[string]ramble.Experiment{
						"saxpy_openmp_512": {Variables: map[string]interface{}{"n": 512, "n_ranks": 8}},
					},
				},
			}},
		},
		Software: ramble.Software{
			Packages: map[string]ramble.Package{"saxpy": {PkgSpec: "saxpy+openmp", Compiler: "default-compiler"}},
		},
	}}

	data, err := ramble.Marshal(doc)
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(string(data)).To(g.ContainSubstring("saxpy_openmp_512:"))
	g.Expect(string(data)).To(g.ContainSubstring("mode: time"))
	g.Expect(string(data)).NotTo(g.ContainSubstring("environments"))

	decoded := &ramble.Document{}
	g.Expect(ramble.Unmarshal(data, decoded)).To(g.Succeed())
	g.Expect(decoded.Ramble.Modifiers).To(g.Equal(doc.Ramble.Modifiers))
	g.Expect(decoded.Ramble.Software).To(g.Equal(doc.Ramble.Software))
	g.Expect(decoded.Ramble.Applications["saxpy"].Workloads["problem"].Experiments["saxpy_openmp_512"].Variables).
		To(g.HaveKeyWithValue("n", 512))
}

func TestUnmarshal_rejectsUnknownFields(t *testing.T) {
	g.RegisterTestingT(t)

	err := ramble.Unmarshal([]byte("ramble:\n  bogus: 1\n"), &ramble.Document{})
	g.Expect(err).To(g.HaveOccurred())
}

func TestExpand_nested(t *testing.T) {
	g.RegisterTestingT(t)

	vars := map[string]interface{}{
		"experiment_run_dir": "/ws/experiments/{experiment_name}",
		"experiment_name":    "saxpy_openmp_512",
		"n_ranks":            8,
	}

	out := ramble.Expand("cd {experiment_run_dir} && run -n {n_ranks} {unknown}", vars)

	g.Expect(out).To(g.Equal("cd /ws/experiments/saxpy_openmp_512 && run -n 8 {unknown}"))
}

func TestExpand_selfReferenceTerminates(t *testing.T) {
	g.RegisterTestingT(t)

	out := ramble.Expand("{a}", map[string]interface{}{"a": "x{a}"})
	g.Expect(out).To(g.HavePrefix("xxxx"))
}

func TestCommand_Render(t *testing.T) {
	g.RegisterTestingT(t)

	out, err := ramble.Command{
		Env:        map[string]string{"OMP_NUM_THREADS": "2", "CALI_CONFIG": "spot(output=a.cali)"},
		Launcher:   "flux run -N 1 -n 8",
		Executable: "saxpy -n 512",
	}.Render()

	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(out).To(g.Equal("export CALI_CONFIG=\"spot(output=a.cali)\"\nexport OMP_NUM_THREADS=\"2\"\nflux run -N 1 -n 8 saxpy -n 512\n"))

	bare, err := ramble.Command{Launcher: "mpirun -n 1", Executable: "saxpy"}.Render()
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(bare).To(g.Equal("mpirun -n 1 saxpy\n"))
}
