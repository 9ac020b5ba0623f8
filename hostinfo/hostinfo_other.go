//go:build !linux

package hostinfo

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/scitags/sysinfo-go/types"
)

func HostName() (types.HostName, error) {
	info, err := host.Info()
	if err != nil {
		return types.HostName{}, err
	}
	return types.NewHostName(info.Hostname), nil
}

func Memory() (types.SystemMemory, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return types.SystemMemory{}, err
	}
	return types.SystemMemory{Total: vm.Total, Avail: vm.Available}, nil
}

func CPUCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

func Cgroup() (types.CgroupInfo, error) {
	return types.CgroupInfo{Mode: "unavailable"}, nil
}
