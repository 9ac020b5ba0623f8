package hostinfo

import (
	"errors"
	"fmt"

	"github.com/scitags/sysinfo-go/types"
)

// Collect gathers every host fact. Facts that couldn't be retrieved are
// left zeroed and their errors joined.
func Collect() (*types.HostReport, error) {
	var errs error

	name, err := HostName()
	if err != nil {
		errs = errors.Join(errs, fmt.Errorf("couldn't get the hostname: %w", err))
	}

	mem, err := Memory()
	if err != nil {
		errs = errors.Join(errs, fmt.Errorf("couldn't get the memory statistics: %w", err))
	}

	report := types.NewHostReport(name, mem, CPUCount())

	report.Cgroup, err = Cgroup()
	if err != nil {
		errs = errors.Join(errs, fmt.Errorf("couldn't get the cgroup information: %w", err))
	}

	return report, errs
}
