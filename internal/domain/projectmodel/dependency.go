// Where: internal/domain/projectmodel/dependency.go
// What: Dependency description types and the DependencyType enum.
// Why: The tool serializes the enum either as an ordinal or as a name.
package projectmodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DependencyDescription describes one node of the project's dependency graph.
type DependencyDescription struct {
	Name            string         `json:"Name"`
	Version         string         `json:"Version,omitempty"`
	Path            string         `json:"Path,omitempty"`
	TargetFramework string         `json:"TargetFramework,omitempty"`
	Type            DependencyType `json:"Type"`
	Resolved        bool           `json:"Resolved"`
	Dependencies    []Dependency   `json:"Dependencies,omitempty"`
}

// Dependency is an edge from a DependencyDescription to another package.
type Dependency struct {
	Name    string `json:"Name"`
	Version string `json:"Version,omitempty"`
}

// DependencyType is the kind of a dependency. Ordinals match the tool's enum.
type DependencyType int

const (
	DependencyTarget DependencyType = iota
	DependencyPackage
	DependencyAssembly
	DependencyProject
	DependencyAnalyzerAssembly
	DependencyUnknown
)

var dependencyTypeNames = []string{
	"Target",
	"Package",
	"Assembly",
	"Project",
	"AnalyzerAssembly",
	"Unknown",
}

func (t DependencyType) String() string {
	if t < 0 || int(t) >= len(dependencyTypeNames) {
		return "Unknown"
	}
	return dependencyTypeNames[t]
}

// ParseDependencyType maps a name (case-insensitive) to its enum value.
func ParseDependencyType(name string) (DependencyType, error) {
	trimmed := strings.TrimSpace(name)
	for i, candidate := range dependencyTypeNames {
		if strings.EqualFold(candidate, trimmed) {
			return DependencyType(i), nil
		}
	}
	return DependencyUnknown, fmt.Errorf("unknown dependency type %q", name)
}

func (t DependencyType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DependencyType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = DependencyUnknown
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		parsed, err := ParseDependencyType(name)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}
	ordinal, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("dependency type: %w", err)
	}
	if ordinal < 0 || ordinal >= len(dependencyTypeNames) {
		*t = DependencyUnknown
		return nil
	}
	*t = DependencyType(ordinal)
	return nil
}
