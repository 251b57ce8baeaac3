package version

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
}

func TestGetVersionWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil, false)
	if got := GetVersion(); got != "dev" {
		t.Fatalf("GetVersion() = %q, want dev", got)
	}
}

func TestGetVersionShortensRevision(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.25.1",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
		},
	}, true)
	if got := GetVersion(); got != "0123456" {
		t.Fatalf("GetVersion() = %q", got)
	}
	if got := UserAgent(); got != "projectctx/0123456" {
		t.Fatalf("UserAgent() = %q", got)
	}
}

func TestGetVersionMarksDirtyTree(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc1234"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, true)
	if got := GetVersion(); got != "abc1234 (dirty)" {
		t.Fatalf("GetVersion() = %q", got)
	}
}
