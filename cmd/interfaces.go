package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scitags/sysinfo-go"
	"github.com/scitags/sysinfo-go/types"
)

func init() {
	interfacesCmd.Flags().StringVar(&backendFlag, "backend", "", fmt.Sprintf("enumeration backend, one of %v", sysinfo.Backends()))
	interfacesCmd.Flags().BoolVar(&jsonFlag, "json", false, "print JSON instead of text")
	interfacesCmd.Flags().StringVar(&verbosityFlag, "verbosity", "full", "JSON verbosity: full or lean")
}

var (
	backendFlag   string
	jsonFlag      bool
	verbosityFlag string

	interfacesCmd = &cobra.Command{
		Use:   "interfaces",
		Short: "List every interface together with its addresses.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("backend") {
				conf.Backend = backendFlag
			}

			e, err := sysinfo.NewEnumerator(conf.Backend, &conf.Netlink)
			if err != nil {
				return err
			}

			reg, err := e.Enumerate()
			if err != nil {
				return fmt.Errorf("couldn't enumerate the interfaces through %s: %w", e, err)
			}

			if !jsonFlag {
				printRegistry(os.Stdout, reg)
				return nil
			}

			verbosity, ok := types.ParseVerbosity(verbosityFlag)
			if !ok {
				return fmt.Errorf("unknown verbosity %q", verbosityFlag)
			}
			return printJSON(os.Stdout, types.NewRegistryReport(reg, e.String(), verbosity))
		},
	}
)

func printRegistry(w io.Writer, reg *types.Registry) {
	for iface := range reg.All() {
		fmt.Fprintln(w, iface.Name())
		for addr := range iface.Addresses() {
			fmt.Fprintf(w, "  addr=%s/%d net_mask=%s\n", addr.IP, addr.Prefix, addr.NetMask())
		}
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
