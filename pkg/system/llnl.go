package system

import (
	"path"

	"benchpark/pkg/allocation"
	"benchpark/pkg/spec"
)

const gib = int64(1) << 30

// Tioga is the LLNL AMD MI250X system.
func Tioga() *System {
	return &System{
		Name:      "tioga",
		Summary:   "LLNL AMD MI250X cluster, flux scheduler",
		Scheduler: allocation.SchedulerFlux,
		Capacity: allocation.SystemCapacity{
			CoresPerNode: 64,
			GPUsPerNode:  4,
			MemPerNode:   512 * gib,
		},
		VariantDefs: []spec.VariantDef{
			{Name: "rocm", Default: "551", Values: []string{"543", "551"}, Description: "ROCm version"},
			{Name: "compiler", Default: "cce", Values: []string{"gcc", "cce"}, Description: "Which compiler to use"},
			spec.BoolVariant("gtl", false, "Use GTL-enabled MPI"),
		},
		configure: configureTioga,
	}
}

func configureTioga(s *spec.Spec, d *Description) error {
	externals := func(parts ...string) string { return path.Join(append([]string{"externals"}, parts...)...) }
	compilers := func(parts ...string) string { return path.Join(append([]string{"compilers"}, parts...)...) }

	d.Externals = []string{externals("base", "00-packages.yaml")}

	switch s.Value("rocm") {
	case "543":
		d.Externals = append(d.Externals, externals("rocm", "00-version-543-packages.yaml"))
	case "551":
		d.Externals = append(d.Externals, externals("rocm", "01-version-551-packages.yaml"))
	}

	switch s.Value("compiler") {
	case "cce":
		if s.Bool("gtl") {
			d.Externals = append(d.Externals, externals("mpi", "02-cce-ygtl-packages.yaml"))
		} else {
			d.Externals = append(d.Externals, externals("mpi", "01-cce-ngtl-packages.yaml"))
		}

		d.Externals = append(d.Externals, externals("libsci", "01-cce-packages.yaml"))
		d.Compilers = []string{compilers("rocm", "00-rocm-551-compilers.yaml")}
	case "gcc":
		d.Externals = append(d.Externals,
			externals("mpi", "00-gcc-ngtl-packages.yaml"),
			externals("libsci", "00-gcc-packages.yaml"))
		d.Compilers = []string{compilers("gcc", "00-gcc-12-compilers.yaml")}
	}

	d.Variables["rocm_arch"] = "gfx90a"

	d.Software = map[string]string{
		"default-compiler":  "cce",
		"default-mpi":       "cray-mpich",
		"compiler-rocm":     "cce",
		"compiler-amdclang": "clang",
		"compiler-gcc":      "gcc",
		"blas-rocm":         "rocblas",
		"blas":              "rocblas",
		"lapack-rocm":       "rocsolver",
		"lapack":            "cray-libsci",
		"mpi-rocm-gtl":      "cray-mpich+gtl",
		"mpi-rocm-no-gtl":   "cray-mpich~gtl",
		"mpi-gcc":           "cray-mpich~gtl",
		"fftw":              "intel-oneapi-mkl",
	}

	return nil
}

// Dane is the LLNL Sapphire Rapids CPU system.
func Dane() *System {
	return &System{
		Name:      "dane",
		Summary:   "LLNL Intel Sapphire Rapids CPU cluster, slurm scheduler",
		Scheduler: allocation.SchedulerSlurm,
		Capacity: allocation.SystemCapacity{
			CoresPerNode: 112,
			MemPerNode:   256 * gib,
		},
		VariantDefs: []spec.VariantDef{
			{Name: "compiler", Default: "gcc", Values: []string{"gcc", "intel"}, Description: "Which compiler to use"},
		},
		configure: func(s *spec.Spec, d *Description) error {
			compiler := s.Value("compiler")

			d.Compilers = []string{path.Join("compilers", compiler, "00-"+compiler+"-compilers.yaml")}
			d.Externals = []string{path.Join("externals", "base", "00-packages.yaml")}
			d.Software = map[string]string{
				"default-compiler": compiler,
				"default-mpi":      "mvapich2",
				"blas":             "intel-oneapi-mkl",
				"lapack":           "intel-oneapi-mkl",
				"fftw":             "intel-oneapi-mkl",
			}

			return nil
		},
	}
}
