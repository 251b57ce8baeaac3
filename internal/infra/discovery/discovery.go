// Where: internal/infra/discovery/discovery.go
// What: Locate the project file to evaluate.
// Why: Let users point at a directory instead of spelling out the project file.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoProject is returned when a directory holds no project file.
var ErrNoProject = errors.New("no project file found")

// ProjectExtensions are the project file kinds the build tool can evaluate.
var ProjectExtensions = []string{".csproj", ".fsproj", ".vbproj"}

// AmbiguousProjectError lists the candidates when a directory holds several
// project files.
type AmbiguousProjectError struct {
	Dir        string
	Candidates []string
}

func (e *AmbiguousProjectError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, candidate := range e.Candidates {
		names = append(names, filepath.Base(candidate))
	}
	return fmt.Sprintf("multiple project files in %s: %s", e.Dir, strings.Join(names, ", "))
}

// IsProjectFile reports whether path has a known project extension.
func IsProjectFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range ProjectExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// FindProjectFile resolves target to a single project file. A file path is
// returned as-is (made absolute). A directory must contain exactly one
// project file. An empty target means the working directory.
func FindProjectFile(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		target = "."
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", target, err)
	}
	if !info.IsDir() {
		return abs, nil
	}

	candidates, err := Candidates(abs)
	if err != nil {
		return "", err
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrNoProject, abs)
	case 1:
		return candidates[0], nil
	default:
		return "", &AmbiguousProjectError{Dir: abs, Candidates: candidates}
	}
}

// Candidates returns the sorted project files directly inside dir.
func Candidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !IsProjectFile(entry.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(out)
	return out, nil
}
