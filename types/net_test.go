package types

import (
	"net/netip"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in        string
		class     string
		private   bool
		linkLocal bool
	}{
		{"127.0.0.1", "loopback", true, false},
		{"10.0.2.15", "private-use", true, false},
		{"192.168.1.1", "private-use", true, false},
		{"169.254.10.1", "link-local", true, true},
		{"8.8.8.8", "", false, false},
		{"0.0.0.0", "this-host", true, false},
		{"::1", "loopback", true, false},
		{"::", "unspecified", true, false},
		{"fe80::1:2:3:4", "link-local", true, true},
		{"fd00::1", "unique-local", true, false},
		{"2001:db8::1", "documentation", true, false},
		{"2001:4860:4860::8844", "", false, false},
		{"::ffff:192.168.0.1", "private-use", true, false},
	}

	for _, test := range tests {
		ip, err := netip.ParseAddr(test.in)
		if err != nil {
			t.Errorf("error parsing addr %q", test.in)
			continue
		}
		if class, _ := Classify(ip); class != test.class {
			t.Errorf("%q: class: got %q, want %q", test.in, class, test.class)
		}
		if private := IsIPPrivate(ip); private != test.private {
			t.Errorf("%q: private: got %v, want %v", test.in, private, test.private)
		}
		if linkLocal := IsIPLinkLocal(ip); linkLocal != test.linkLocal {
			t.Errorf("%q: link-local: got %v, want %v", test.in, linkLocal, test.linkLocal)
		}
	}
}
