package experiment

import (
	"benchpark/pkg/allocation"
	"benchpark/pkg/spec"
)

var requestIntKeys = []string{
	"n_ranks",
	"n_gpus",
	"n_nodes",
	"n_cores_per_node",
	"n_ranks_per_node",
	"n_threads_per_proc",
}

const requestMemKey = "n_mem_per_node"

func isRequestKey(key string) bool {
	if key == requestMemKey {
		return true
	}

	for _, k := range requestIntKeys {
		if k == key {
			return true
		}
	}

	return false
}

// requestOverrides reads n_* keys given on the command line.
func requestOverrides(s *spec.Spec) (allocation.Request, error) {
	var req allocation.Request

	fields := map[string]**int{
		"n_ranks":            &req.NRanks,
		"n_gpus":             &req.NGPUs,
		"n_nodes":            &req.NNodes,
		"n_cores_per_node":   &req.NCoresPerNode,
		"n_ranks_per_node":   &req.NRanksPerNode,
		"n_threads_per_proc": &req.NThreadsPerProc,
	}

	for _, key := range requestIntKeys {
		n, set, err := s.Int(key)
		if err != nil {
			return req, err
		}

		if set {
			*fields[key] = allocation.Int(n)
		}
	}

	if mem := s.Value(requestMemKey); mem != "" {
		bytes, err := allocation.ParseMemory(mem)
		if err != nil {
			return req, err
		}

		req.NMemPerNode = allocation.Int64(bytes)
	}

	return req, nil
}

// merge returns base with every field set in override replaced.
func merge(base, override allocation.Request) allocation.Request {
	if override.NRanks != nil {
		base.NRanks = override.NRanks
	}

	if override.NGPUs != nil {
		base.NGPUs = override.NGPUs
	}

	if override.NNodes != nil {
		base.NNodes = override.NNodes
	}

	if override.NCoresPerNode != nil {
		base.NCoresPerNode = override.NCoresPerNode
	}

	if override.NMemPerNode != nil {
		base.NMemPerNode = override.NMemPerNode
	}

	if override.NRanksPerNode != nil {
		base.NRanksPerNode = override.NRanksPerNode
	}

	if override.NThreadsPerProc != nil {
		base.NThreadsPerProc = override.NThreadsPerProc
	}

	return base
}
