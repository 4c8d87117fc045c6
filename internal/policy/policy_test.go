package policy

import "testing"

func TestIsBlockedHost(t *testing.T) {
	cases := []struct {
		host    string
		blocked bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"localhost.", true},
		{"host.docker.internal", true},
		{"127.0.0.1", true},
		{"127.255.255.255", true},
		{"0.0.0.0", true},
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"172.20.0.5", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"169.254.1.1", true},
		{"100.64.0.1", true},
		{"100.70.0.1", true},
		{"100.127.255.255", true},
		{"::", true},
		{"::1", true},
		{"[::1]", true},
		{"::ffff:127.0.0.1", true},
		{"fe80::1", true},
		{"fc00::1", true},
		{"fd12:3456::1", true},

		{"play.example.com", false},
		{"8.8.8.8", false},
		{"203.0.113.5", false},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"100.63.0.1", false},
		{"100.128.0.1", false},
		{"11.0.0.1", false},
		{"2001:db8::1", false},
	}

	for _, tc := range cases {
		if got := IsBlockedHost(tc.host); got != tc.blocked {
			t.Errorf("IsBlockedHost(%q) = %v, want %v", tc.host, got, tc.blocked)
		}
	}
}

func TestParsePort(t *testing.T) {
	cases := []struct {
		raw  string
		want uint16
	}{
		{"25575", 25575},
		{" 25566 ", 25566},
		{"1", 1},
		{"65535", 65535},
		{"", 25575},
		{"0", 25575},
		{"65536", 25575},
		{"-5", 25575},
		{"abc", 25575},
	}

	for _, tc := range cases {
		if got := ParsePort(tc.raw); got != tc.want {
			t.Errorf("ParsePort(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
