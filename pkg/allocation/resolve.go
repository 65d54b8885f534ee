package allocation

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"benchpark/pkg/defaults"
	bperrors "benchpark/pkg/errors"
)

const (
	BoundByRequest      = "request"
	BoundByRanks        = "ranks"
	BoundByRanksPerNode = "ranks_per_node"
	BoundByGPUs         = "gpus"
)

// Request is a partially specified resource request. Nil fields are computed.
type Request struct {
	NRanks          *int
	NGPUs           *int
	NNodes          *int
	NCoresPerNode   *int
	NMemPerNode     *int64
	NRanksPerNode   *int
	NThreadsPerProc *int
}

// Resolved is a fully populated allocation.
type Resolved struct {
	NNodes          int
	NRanks          int
	NGPUs           int
	NThreadsPerProc int
	NRanksPerNode   int
	NGPUsPerNode    int
	NCoresPerRank   int
	// NMemPerNode is zero unless the request asked for memory.
	NMemPerNode int64
	// BoundBy records which quantity determined the node count.
	BoundBy string
}

// Int returns a pointer to v, for building requests.
func Int(v int) *int {
	return &v
}

// Int64 returns a pointer to v, for building requests.
func Int64(v int64) *int64 {
	return &v
}

// Resolve fills in the missing fields of req from the capacity of the system
// and validates the result. Every capacity violation is reported.
func Resolve(capacity SystemCapacity, req Request) (*Resolved, error) {
	if err := capacity.Validate(); err != nil {
		return nil, err
	}

	if err := req.validate(); err != nil {
		return nil, err
	}

	threads := valueOr(req.NThreadsPerProc, defaults.ThreadsPerProc)
	gpus := valueOr(req.NGPUs, 0)
	budget := coreBudget(capacity, req)

	resolved := &Resolved{
		NGPUs:           gpus,
		NThreadsPerProc: threads,
		BoundBy:         BoundByRequest,
	}

	if req.NNodes != nil {
		resolved.NNodes = *req.NNodes
	} else {
		resolved.NNodes, resolved.BoundBy = nodeCount(capacity, budget, req.NRanks, req.NRanksPerNode, gpus, threads)
	}

	switch {
	case req.NRanks != nil:
		resolved.NRanks = *req.NRanks
	case req.NRanksPerNode != nil && resolved.NNodes > 0:
		resolved.NRanks = resolved.NNodes * *req.NRanksPerNode
	case gpus > 0:
		resolved.NRanks = gpus
	default:
		return nil, bperrors.ErrRanksRequired
	}

	// gpus requested from a system without gpus leaves the node count to the ranks
	if resolved.NNodes == 0 {
		resolved.NNodes, resolved.BoundBy = nodeCount(capacity, budget, &resolved.NRanks, req.NRanksPerNode, 0, threads)
	}

	// a node never hosts more ranks than there are to place on it
	resolved.NRanksPerNode = ceilDiv(resolved.NRanks, resolved.NNodes)
	if req.NRanksPerNode != nil && *req.NRanksPerNode < resolved.NRanksPerNode {
		resolved.NRanksPerNode = *req.NRanksPerNode
	}

	resolved.NGPUsPerNode = ceilDiv(gpus, resolved.NNodes)

	resolved.NCoresPerRank = budget / resolved.NRanksPerNode
	if resolved.NCoresPerRank < 1 {
		resolved.NCoresPerRank = 1
	}

	if req.NMemPerNode != nil {
		resolved.NMemPerNode = *req.NMemPerNode
	}

	if err := validate(capacity, req, resolved); err != nil {
		return nil, err
	}

	return resolved, nil
}

// Variables returns the allocation as ramble variables.
func (r *Resolved) Variables() map[string]interface{} {
	vars := map[string]interface{}{
		"n_nodes":            r.NNodes,
		"n_ranks":            r.NRanks,
		"n_gpus":             r.NGPUs,
		"n_threads_per_proc": r.NThreadsPerProc,
		"n_ranks_per_node":   r.NRanksPerNode,
		"n_gpus_per_node":    r.NGPUsPerNode,
		"n_cores_per_rank":   r.NCoresPerRank,
	}

	if r.NMemPerNode > 0 {
		vars["n_mem_per_node"] = FormatMemory(r.NMemPerNode)
	}

	return vars
}

// Variables returns the fields of the request that are set, as ramble variables.
func (r Request) Variables() map[string]interface{} {
	vars := map[string]interface{}{}

	setInt := func(name string, v *int) {
		if v != nil {
			vars[name] = *v
		}
	}

	setInt("n_ranks", r.NRanks)
	setInt("n_gpus", r.NGPUs)
	setInt("n_nodes", r.NNodes)
	setInt("n_cores_per_node", r.NCoresPerNode)
	setInt("n_ranks_per_node", r.NRanksPerNode)
	setInt("n_threads_per_proc", r.NThreadsPerProc)

	if r.NMemPerNode != nil {
		vars["n_mem_per_node"] = FormatMemory(*r.NMemPerNode)
	}

	return vars
}

func (r Request) validate() error {
	var result *multierror.Error

	check := func(name string, v *int) {
		if v != nil && *v <= 0 {
			result = multierror.Append(result, fmt.Errorf("%w: %s must be positive, got %d",
				bperrors.ErrInvalidRequest, name, *v))
		}
	}

	check("n_ranks", r.NRanks)
	check("n_nodes", r.NNodes)
	check("n_cores_per_node", r.NCoresPerNode)
	check("n_ranks_per_node", r.NRanksPerNode)
	check("n_threads_per_proc", r.NThreadsPerProc)

	if r.NGPUs != nil && *r.NGPUs < 0 {
		result = multierror.Append(result, fmt.Errorf("%w: n_gpus must not be negative, got %d",
			bperrors.ErrInvalidRequest, *r.NGPUs))
	}

	if r.NMemPerNode != nil && *r.NMemPerNode <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: n_mem_per_node must be positive, got %d",
			bperrors.ErrInvalidRequest, *r.NMemPerNode))
	}

	return result.ErrorOrNil()
}

// coreBudget is the number of cores per node the allocation may use: the
// requested n_cores_per_node when it is below what the system has.
func coreBudget(capacity SystemCapacity, req Request) int {
	if req.NCoresPerNode != nil && *req.NCoresPerNode < capacity.CoresPerNode {
		return *req.NCoresPerNode
	}

	return capacity.CoresPerNode
}

// nodeCount is max(ceil(ranks*threads/budget), ceil(ranks/ranks_per_node),
// ceil(gpus/sys_gpus)), skipping terms whose inputs are absent. Equal terms
// report the gpus as the bound.
func nodeCount(capacity SystemCapacity, budget int, ranks, ranksPerNode *int, gpus, threads int) (int, string) {
	nodes, bound := 0, BoundByRequest

	if ranks != nil {
		nodes, bound = ceilDiv(*ranks*threads, budget), BoundByRanks

		if ranksPerNode != nil {
			if byRPN := ceilDiv(*ranks, *ranksPerNode); byRPN > nodes {
				nodes, bound = byRPN, BoundByRanksPerNode
			}
		}
	}

	if capacity.GPUsPerNode > 0 && gpus > 0 {
		if byGPU := ceilDiv(gpus, capacity.GPUsPerNode); byGPU >= nodes {
			nodes, bound = byGPU, BoundByGPUs
		}
	}

	return nodes, bound
}

func validate(capacity SystemCapacity, req Request, r *Resolved) error {
	var result *multierror.Error

	overAllocated := func(resource string, requested, available int64) {
		result = multierror.Append(result, bperrors.OverAllocationError{
			Resource:  resource,
			Requested: requested,
			Available: available,
		})
	}

	if capacity.Nodes > 0 && r.NNodes > capacity.Nodes {
		overAllocated("nodes", int64(r.NNodes), int64(capacity.Nodes))
	}

	if used := r.NRanksPerNode * r.NThreadsPerProc; used > capacity.CoresPerNode {
		overAllocated("cores_per_node", int64(used), int64(capacity.CoresPerNode))
	} else if budget := coreBudget(capacity, req); used > budget {
		overAllocated("n_cores_per_node", int64(used), int64(budget))
	}

	if req.NCoresPerNode != nil && *req.NCoresPerNode > capacity.CoresPerNode {
		overAllocated("n_cores_per_node", int64(*req.NCoresPerNode), int64(capacity.CoresPerNode))
	}

	if r.NGPUs > 0 && r.NGPUsPerNode > capacity.GPUsPerNode {
		overAllocated("gpus_per_node", int64(r.NGPUsPerNode), int64(capacity.GPUsPerNode))
	}

	if r.NMemPerNode > capacity.MemPerNode {
		overAllocated("mem_per_node", r.NMemPerNode, capacity.MemPerNode)
	}

	if req.NRanksPerNode != nil && r.NNodes*(*req.NRanksPerNode) < r.NRanks {
		result = multierror.Append(result, fmt.Errorf("%w: %d ranks do not fit on %d nodes with %d ranks per node",
			bperrors.ErrInvalidRequest, r.NRanks, r.NNodes, *req.NRanksPerNode))
	}

	return result.ErrorOrNil()
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}

	return *v
}

func ceilDiv(a, b int) int {
	if b <= 0 || a <= 0 {
		return 0
	}

	return (a + b - 1) / b
}
