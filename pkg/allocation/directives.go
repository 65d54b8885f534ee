package allocation

import (
	"fmt"
	"sort"
	"strings"

	bperrors "benchpark/pkg/errors"
)

const (
	SchedulerFlux  = "flux"
	SchedulerSlurm = "slurm"
	SchedulerLSF   = "lsf"
	SchedulerMPI   = "mpi"
)

// Directives is how a resolved allocation is launched under a scheduler.
type Directives struct {
	Scheduler   string
	MPICommand  string
	BatchSubmit string
	// Header holds the batch script directive lines, one per entry.
	Header []string
}

// Schedulers returns the supported scheduler names.
func Schedulers() []string {
	names := []string{SchedulerFlux, SchedulerSlurm, SchedulerLSF, SchedulerMPI}
	sort.Strings(names)

	return names
}

// Directives renders launch and batch directives for the allocation.
// An empty scheduler launches with plain mpirun.
func (r *Resolved) Directives(scheduler string, timeoutMinutes int) (*Directives, error) {
	gpusPerRank := 0
	if r.NGPUs > 0 {
		gpusPerRank = ceilDiv(r.NGPUs, r.NRanks)
	}

	d := &Directives{Scheduler: scheduler}

	switch scheduler {
	case SchedulerFlux:
		cmd := []string{"flux", "run",
			fmt.Sprintf("-N %d", r.NNodes),
			fmt.Sprintf("-n %d", r.NRanks),
			fmt.Sprintf("-c %d", r.NCoresPerRank)}
		if gpusPerRank > 0 {
			cmd = append(cmd, fmt.Sprintf("-g %d", gpusPerRank))
		}

		d.MPICommand = strings.Join(cmd, " ")
		d.BatchSubmit = "flux batch {execute_experiment}"
		d.Header = []string{
			fmt.Sprintf("# flux: -N %d", r.NNodes),
			fmt.Sprintf("# flux: -t %dm", timeoutMinutes),
		}
	case SchedulerSlurm:
		cmd := []string{"srun",
			fmt.Sprintf("-N %d", r.NNodes),
			fmt.Sprintf("-n %d", r.NRanks),
			fmt.Sprintf("--cpus-per-task=%d", r.NCoresPerRank)}
		if gpusPerRank > 0 {
			cmd = append(cmd, fmt.Sprintf("--gpus-per-task=%d", gpusPerRank))
		}

		d.MPICommand = strings.Join(cmd, " ")
		d.BatchSubmit = "sbatch {execute_experiment}"
		d.Header = []string{
			fmt.Sprintf("#SBATCH -N %d", r.NNodes),
			fmt.Sprintf("#SBATCH --ntasks-per-node=%d", r.NRanksPerNode),
			fmt.Sprintf("#SBATCH -t %d", timeoutMinutes),
		}
		if r.NGPUsPerNode > 0 {
			d.Header = append(d.Header, fmt.Sprintf("#SBATCH --gpus-per-node=%d", r.NGPUsPerNode))
		}
	case SchedulerLSF:
		d.MPICommand = fmt.Sprintf("jsrun -n %d -a 1 -c %d -g %d", r.NRanks, r.NCoresPerRank, gpusPerRank)
		d.BatchSubmit = "bsub {execute_experiment}"
		d.Header = []string{
			fmt.Sprintf("#BSUB -nnodes %d", r.NNodes),
			fmt.Sprintf("#BSUB -W %d", timeoutMinutes),
		}
	case SchedulerMPI, "":
		d.Scheduler = SchedulerMPI
		d.MPICommand = fmt.Sprintf("mpirun -n %d", r.NRanks)
		d.BatchSubmit = "{execute_experiment}"
	default:
		return nil, fmt.Errorf("%w %q, expected one of %s", bperrors.ErrUnsupportedScheduler, scheduler, strings.Join(Schedulers(), ", "))
	}

	return d, nil
}

// Variables returns the directives as ramble variables.
func (d *Directives) Variables() map[string]interface{} {
	return map[string]interface{}{
		"mpi_command":      d.MPICommand,
		"batch_submit":     d.BatchSubmit,
		"batch_directives": strings.Join(d.Header, "\n"),
		"scheduler":        d.Scheduler,
	}
}
