package buildinfo

import (
	"strings"
	"testing"
)

func TestBinaryVersionDefault(t *testing.T) {
	if BinaryVersion == "" {
		t.Fatal("BinaryVersion must never be empty")
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "craftpkg/") {
		t.Errorf("unexpected user agent %q", ua)
	}
	if !strings.Contains(ua, BinaryVersion) {
		t.Errorf("user agent %q missing version %q", ua, BinaryVersion)
	}
}
