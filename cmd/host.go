package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scitags/sysinfo-go/hostinfo"
	"github.com/scitags/sysinfo-go/types"
)

func init() {
	hostCmd.Flags().BoolVar(&jsonFlag, "json", false, "print JSON instead of text")
}

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Show the hostname, memory and CPU count.",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := hostinfo.Collect()
		if err != nil {
			slog.Warn("couldn't collect every host fact", "err", err)
		}

		if jsonFlag {
			return printJSON(os.Stdout, report)
		}
		printHost(os.Stdout, report)
		return nil
	},
}

func printHost(w io.Writer, r *types.HostReport) {
	fmt.Fprintf(w, "hostname: %s\n", r.HostName)
	fmt.Fprintf(w, "memory: total=%d avail=%d used=%d\n", r.Memory.Total, r.Memory.Avail, r.Memory.Used())
	fmt.Fprintf(w, "cpus: %d\n", r.CPUCount)
	fmt.Fprintf(w, "cgroup: mode=%s path=%s\n", r.Cgroup.Mode, r.Cgroup.Path)
}
