package command_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	g "github.com/onsi/gomega"

	"benchpark/internal/command"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd, err := command.NewRootCommand()
	g.Expect(err).NotTo(g.HaveOccurred())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return out.String(), err
}

func TestVersion(t *testing.T) {
	g.RegisterTestingT(t)

	out, err := execute(t, "version", "--short")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(out).To(g.Equal("undefined\n"))
}

func TestList(t *testing.T) {
	g.RegisterTestingT(t)

	out, err := execute(t, "list", "modifiers")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(out).To(g.ContainSubstring("topdown-all"))

	_, err = execute(t, "list", "compilers")
	g.Expect(err).To(g.HaveOccurred())
}

func TestExperimentSystemSetup(t *testing.T) {
	g.RegisterTestingT(t)

	root := t.TempDir()
	expDir := filepath.Join(root, "saxpy")
	sysDir := filepath.Join(root, "host")
	wsDir := filepath.Join(root, "workspace")
	metricsFile := filepath.Join(root, "benchpark.prom")

	out, err := execute(t, "experiment", "init", "--dest", expDir, "saxpy", "+openmp")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(out).To(g.ContainSubstring("saxpy_openmp_1024_8ranks"))

	_, err = execute(t, "system", "init", "--dest="+sysDir, "host", "cores=4", "mem=8GB")
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(filepath.Join(sysDir, "system.toml")).To(g.BeAnExistingFile())

	out, err = execute(t, "--metrics-file", metricsFile, "setup", expDir, sysDir, wsDir)
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(out).To(g.ContainSubstring("with 4 experiments"))

	script, err := os.ReadFile(filepath.Join(wsDir, "experiments", "saxpy", "problem", "saxpy_openmp_128_8ranks", "execute_experiment"))
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(string(script)).To(g.ContainSubstring("export OMP_NUM_THREADS=\"2\""))
	g.Expect(string(script)).To(g.ContainSubstring("mpirun -n 8 saxpy -n 128"))

	metrics, err := os.ReadFile(metricsFile)
	g.Expect(err).NotTo(g.HaveOccurred())
	g.Expect(string(metrics)).To(g.ContainSubstring(`benchpark_experiments_generated_total{benchmark="saxpy"} 4`))
}

func TestExperimentInit_requiresDest(t *testing.T) {
	g.RegisterTestingT(t)

	_, err := execute(t, "experiment", "init", "saxpy")
	g.Expect(err).To(g.MatchError(g.ContainSubstring("dest")))
}
