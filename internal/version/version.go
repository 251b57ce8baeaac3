// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Report the VCS revision the binary was built from.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/poruru/projectctx/internal/meta"
)

var readBuildInfo = debug.ReadBuildInfo

// Info is the subset of build metadata printed by `projectctx version`.
type Info struct {
	Revision  string
	Modified  bool
	GoVersion string
}

// Read collects build info. Revision is empty when the binary was not built
// from a VCS checkout.
func Read() Info {
	info, ok := readBuildInfo()
	if !ok {
		return Info{}
	}
	out := Info{GoVersion: info.GoVersion}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			out.Revision = setting.Value
			if len(out.Revision) > 7 {
				out.Revision = out.Revision[:7]
			}
		case "vcs.modified":
			out.Modified = setting.Value == "true"
		}
	}
	return out
}

// GetVersion returns the short revision, "(dirty)" suffixed for modified
// trees, or "dev" when no revision is embedded.
func GetVersion() string {
	info := Read()
	if info.Revision == "" {
		return "dev"
	}
	if info.Modified {
		return fmt.Sprintf("%s (dirty)", info.Revision)
	}
	return info.Revision
}

// UserAgent identifies the CLI to remote APIs.
func UserAgent() string {
	return meta.AppName + "/" + GetVersion()
}
