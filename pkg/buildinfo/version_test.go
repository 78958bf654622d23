package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	if got := UserAgent(); got != "evekit/v1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "evekit/v1.2.3")
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), Version) {
		t.Errorf("Template() = %q, should contain version %q", Template(), Version)
	}
	if !strings.HasPrefix(String(), "version: ") {
		t.Errorf("String() = %q, want version prefix", String())
	}
}
