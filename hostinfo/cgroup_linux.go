//go:build linux

package hostinfo

import (
	"fmt"
	"os"

	"github.com/containerd/cgroups"
	"github.com/prometheus/procfs"

	"github.com/scitags/sysinfo-go/types"
)

var (
	cgroupMode = cgroups.Mode

	// pid is only ever changed by tests.
	pid = os.Getpid

	cgroupModeNames = map[cgroups.CGMode]string{
		cgroups.Unavailable: "unavailable",
		cgroups.Legacy:      "legacy",
		cgroups.Hybrid:      "hybrid",
		cgroups.Unified:     "unified",
	}
)

// Cgroup reports the cgroup mode of the host and, on a unified hierarchy,
// the path of the cgroup the process belongs to.
func Cgroup() (types.CgroupInfo, error) {
	mode := cgroupMode()
	info := types.CgroupInfo{Mode: cgroupModeNames[mode]}

	if mode != cgroups.Unified {
		return info, nil
	}

	proc, err := procfs.NewFS(procRoot)
	if err != nil {
		return info, err
	}

	p, err := proc.Proc(pid())
	if err != nil {
		return info, fmt.Errorf("error getting proc entry for PID %d: %w", pid(), err)
	}

	cgs, err := p.Cgroups()
	if err != nil {
		return info, fmt.Errorf("error getting cgroup information: %w", err)
	}

	if len(cgs) != 1 {
		return info, fmt.Errorf("the process belongs to %d cgroups on a unified hierarchy", len(cgs))
	}

	info.Path = cgs[0].Path
	return info, nil
}
