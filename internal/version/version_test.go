package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Version != "unknown" {
		t.Logf("Version is: %s (expected 'unknown' or version set via ldflags)", Version)
	}
}

func TestBuildInfo(t *testing.T) {
	if BuildTime == "" {
		t.Error("BuildTime should be initialized")
	}
	if GitCommit == "" {
		t.Error("GitCommit should be initialized")
	}
}

func TestCacheTag(t *testing.T) {
	tag := CacheTag()
	if !strings.HasSuffix(tag, "+schema."+CacheSchema) {
		t.Errorf("cache tag %q should end with the schema", tag)
	}

	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v9.9.9"
	if CacheTag() != "v9.9.9+schema."+CacheSchema {
		t.Errorf("unexpected tag %q", CacheTag())
	}
	if !strings.Contains(String(), "v9.9.9") {
		t.Errorf("unexpected version line %q", String())
	}
}
