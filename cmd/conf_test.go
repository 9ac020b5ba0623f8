package main

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scitags/sysinfo-go/api"
	"github.com/scitags/sysinfo-go/exporter"
	"github.com/scitags/sysinfo-go/netlink"
	"github.com/scitags/sysinfo-go/types"
)

func TestYAMLAndJSON(t *testing.T) {
	testDir := "testdata/yaml_json"
	d, err := os.ReadDir(testDir)
	if err != nil {
		t.Fatalf("error reading testdata: %v", err)
	}

	confs := []*Config{}
	for _, n := range d {
		c, err := ReadConf(testDir + "/" + n.Name())
		if err != nil {
			t.Fatalf("error parsing %q: %v", n.Name(), err)
		}
		t.Logf("%s:\n%s", n.Name(), c)
		confs = append(confs, c)
	}

	if len(confs) != 2 {
		t.Fatalf("expected two configurations but got %d", len(confs))
	}

	if !cmp.Equal(confs[0], confs[1]) {
		t.Errorf("configurations are not equal: %s", cmp.Diff(confs[0], confs[1]))
	}
}

func TestReadConf(t *testing.T) {
	testDir := "testdata/conf"

	partial := DefaultConfig
	partial.LogLevel = "debug"
	partial.Netlink.Strict = true
	partial.Api.BindPort = 8080

	tests := map[string]Config{
		"empty.yaml":   DefaultConfig,
		"partial.yaml": partial,
		"populated.yaml": {
			LogLevel: "trace",
			Backend:  "rtnl",
			Netlink: netlink.Config{
				ReceiveBufferSize: 32768,
				ReadTimeoutMs:     1500,
				Strict:            true,
			},
			Api: api.Config{
				BindAddress: "0.0.0.0",
				BindPort:    9999,
			},
			Exporter: exporter.Config{
				Log:       false,
				Namespace: "node",
			},
		},
	}

	for name, want := range tests {
		got, err := ReadConf(testDir + "/" + name)
		if err != nil {
			t.Fatalf("error parsing %q: %v", name, err)
		}

		t.Logf("\n%s", got)

		if diff := cmp.Diff(want, *got); diff != "" {
			t.Errorf("%s: configuration mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestReadConfDefaults(t *testing.T) {
	got, err := ReadConf("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cmp.Equal(*got, DefaultConfig) {
		t.Errorf("got %v, want the defaults", got)
	}

	if _, err := ReadConf("testdata/missing.yaml"); err == nil {
		t.Errorf("a missing file was parsed")
	}
}

func TestLogReplacements(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level:       types.LevelTrace,
		ReplaceAttr: logReplacements,
	}))

	logger.Log(t.Context(), types.LevelTrace, "walking message", "len", 16)

	got := buf.String()
	if strings.Contains(got, "time=") {
		t.Errorf("the time wasn't dropped: %q", got)
	}
	if !strings.Contains(got, "level=TRACE") {
		t.Errorf("the trace level wasn't named: %q", got)
	}
}

func TestSetupLogging(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	if err := setupLogging("debug"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := setupLogging("verbose"); err == nil {
		t.Errorf("an unknown level was accepted")
	}
}

func TestPrintRegistry(t *testing.T) {
	var b types.Builder
	b.Add(types.NewInterfaceName("lo"), types.Address{IP: types.IPv4([4]byte{127, 0, 0, 1}), Prefix: 8})
	b.Add(types.NewInterfaceName("lo"), types.Address{IP: types.IPv6([8]uint16{7: 1}), Prefix: 128})

	var buf bytes.Buffer
	printRegistry(&buf, b.Freeze())

	want := "lo\n" +
		"  addr=127.0.0.1/8 net_mask=255.0.0.0\n" +
		"  addr=::1/128 net_mask=ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
