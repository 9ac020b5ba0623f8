package types

// SystemMemory is expressed in bytes. Both fields are zero when the
// platform couldn't report them.
type SystemMemory struct {
	Total uint64 `json:"total" yaml:"total"`
	Avail uint64 `json:"avail" yaml:"avail"`
}

// Used is never negative, even if the kernel reports more available memory
// than there is in total.
func (m SystemMemory) Used() uint64 {
	if m.Avail > m.Total {
		return 0
	}
	return m.Total - m.Avail
}

// CgroupInfo describes the control group hierarchy the process lives in.
// Path is only known on unified hierarchies.
type CgroupInfo struct {
	Mode string `json:"mode" yaml:"mode"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// HostReport gathers the host facts served by the CLI and the API.
type HostReport struct {
	HostName    string       `json:"hostName"`
	RawHostName []byte       `json:"rawHostName,omitempty"`
	Memory      SystemMemory `json:"memory"`
	CPUCount    int          `json:"cpuCount"`
	Cgroup      CgroupInfo   `json:"cgroup"`
}

func NewHostReport(name HostName, mem SystemMemory, cpus int) *HostReport {
	r := &HostReport{
		HostName: name.String(),
		Memory:   mem,
		CPUCount: cpus,
	}
	if _, ok := name.Text(); !ok {
		r.RawHostName = name.Bytes()
	}
	return r
}
