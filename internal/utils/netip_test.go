package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseHostNoPort(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"10.0.0.1":      "10.0.0.1",
		"10.0.0.1:8000": "10.0.0.1",
		"[::1]:8000":    "::1",
		"links.lan":     "links.lan",
		"links.lan:443": "links.lan",
	}
	for in, want := range tests {
		if got := ParseHostNoPort(in); got != want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "172.16.0.1:5000"
	req.Header.Set("X-Forwarded-For", " 203.0.113.5 , 172.16.0.1")

	if got := ClientIP(req, false); got != "172.16.0.1" {
		t.Errorf("ClientIP(untrusted) = %q", got)
	}
	if got := ClientIP(req, true); got != "203.0.113.5" {
		t.Errorf("ClientIP(trusted) = %q", got)
	}

	req.Header.Set("CF-Connecting-IP", "198.51.100.9")
	if got := ClientIP(req, true); got != "198.51.100.9" {
		t.Errorf("ClientIP(cloudflare) = %q", got)
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.10 ", "garbage", ""})
	if m.IsEmpty() {
		t.Fatal("matcher should not be empty")
	}

	for ip, want := range map[string]bool{
		"10.20.30.40":  true,
		"192.168.1.10": true,
		"192.168.1.11": false,
		"not-an-ip":    false,
	} {
		if got := m.Allow(ip); got != want {
			t.Errorf("Allow(%q) = %v, want %v", ip, got, want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("empty list should give an empty matcher")
	}
}
