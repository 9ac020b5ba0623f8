//go:build linux

package hostinfo

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"

	"github.com/scitags/sysinfo-go/types"
)

// procRoot is only ever changed by tests.
var procRoot = procfs.DefaultMountPoint

type errMissingField string

func (e errMissingField) Error() string {
	return fmt.Sprintf("meminfo lacks %s", string(e))
}

// HostName returns the node name as reported by uname(2).
func HostName() (types.HostName, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return types.HostName{}, err
	}

	var h types.HostName
	copy(h[:], uts.Nodename[:])
	return h, nil
}

// Memory prefers /proc/meminfo, whose MemAvailable accounts for reclaimable
// caches, and falls back to sysinfo(2).
func Memory() (types.SystemMemory, error) {
	mem, err := procMemory()
	if err == nil {
		return mem, nil
	}
	slog.Debug("couldn't read meminfo, falling back to sysinfo(2)", "err", err)

	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return types.SystemMemory{}, err
	}

	unit := uint64(si.Unit)
	return types.SystemMemory{
		Total: uint64(si.Totalram) * unit,
		Avail: uint64(si.Freeram) * unit,
	}, nil
}

func procMemory() (types.SystemMemory, error) {
	fs, err := procfs.NewFS(procRoot)
	if err != nil {
		return types.SystemMemory{}, err
	}

	mi, err := fs.Meminfo()
	if err != nil {
		return types.SystemMemory{}, err
	}

	if mi.MemTotal == nil {
		return types.SystemMemory{}, errMissingField("MemTotal")
	}

	// MemAvailable only showed up in 3.14.
	avail := mi.MemAvailable
	if avail == nil {
		avail = mi.MemFree
	}
	if avail == nil {
		return types.SystemMemory{}, errMissingField("MemAvailable")
	}

	return types.SystemMemory{
		Total: *mi.MemTotal * 1024,
		Avail: *avail * 1024,
	}, nil
}

// CPUCount counts the CPUs in the process' affinity mask. When the mask
// can't be read it falls back to the online CPUs.
func CPUCount() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err == nil {
		if n := set.Count(); n > 0 {
			return n
		}
	} else {
		slog.Debug("couldn't get the cpu affinity", "err", err)
	}

	if fs, err := procfs.NewFS(procRoot); err == nil {
		if cpus, err := fs.CPUInfo(); err == nil && len(cpus) > 0 {
			return len(cpus)
		}
	}

	return runtime.NumCPU()
}
