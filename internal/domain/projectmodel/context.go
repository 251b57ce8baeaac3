// Where: internal/domain/projectmodel/context.go
// What: Project context record produced by the build tool.
// Why: Give downstream code generation a typed view of evaluated project metadata.
package projectmodel

import (
	"sort"
)

// ProjectContext mirrors the JSON document written by the
// EvaluateProjectInfoForCodeGeneration target. Field names follow the tool's
// PascalCase contract so decoding needs no renaming.
type ProjectContext struct {
	AssemblyFullPath       string                  `json:"AssemblyFullPath,omitempty"`
	AssemblyName           string                  `json:"AssemblyName,omitempty"`
	CompilationAssemblies  []ResolvedReference     `json:"CompilationAssemblies,omitempty"`
	CompilationItems       []string                `json:"CompilationItems,omitempty"`
	Config                 string                  `json:"Config,omitempty"`
	Configuration          string                  `json:"Configuration,omitempty"`
	DepsFile               string                  `json:"DepsFile,omitempty"`
	EmbededItems           []string                `json:"EmbededItems,omitempty"`
	IsClassLibrary         bool                    `json:"IsClassLibrary"`
	PackageDependencies    []DependencyDescription `json:"PackageDependencies,omitempty"`
	Platform               string                  `json:"Platform,omitempty"`
	ProjectFullPath        string                  `json:"ProjectFullPath,omitempty"`
	ProjectName            string                  `json:"ProjectName,omitempty"`
	ProjectReferences      []string                `json:"ProjectReferences,omitempty"`
	RootNamespace          string                  `json:"RootNamespace,omitempty"`
	RuntimeConfig          string                  `json:"RuntimeConfig,omitempty"`
	TargetDirectory        string                  `json:"TargetDirectory,omitempty"`
	TargetFramework        string                  `json:"TargetFramework,omitempty"`
	TargetFrameworkMoniker string                  `json:"TargetFrameworkMoniker,omitempty"`
}

// ResolvedReference is an assembly the compiler sees, with its on-disk path.
type ResolvedReference struct {
	Name         string `json:"Name"`
	ResolvedPath string `json:"ResolvedPath"`
}

// PackageNames returns the sorted names of package-type dependencies.
func (c *ProjectContext) PackageNames() []string {
	if c == nil {
		return nil
	}
	var names []string
	for _, dep := range c.PackageDependencies {
		if dep.Type == DependencyPackage {
			names = append(names, dep.Name)
		}
	}
	sort.Strings(names)
	return names
}

// DependenciesOfType filters package dependencies by kind, preserving order.
func (c *ProjectContext) DependenciesOfType(kind DependencyType) []DependencyDescription {
	if c == nil {
		return nil
	}
	var out []DependencyDescription
	for _, dep := range c.PackageDependencies {
		if dep.Type == kind {
			out = append(out, dep)
		}
	}
	return out
}

// ResolvedAssemblyPaths lists compilation assembly paths, skipping entries the
// tool could not resolve.
func (c *ProjectContext) ResolvedAssemblyPaths() []string {
	if c == nil {
		return nil
	}
	paths := make([]string, 0, len(c.CompilationAssemblies))
	for _, ref := range c.CompilationAssemblies {
		if ref.ResolvedPath == "" {
			continue
		}
		paths = append(paths, ref.ResolvedPath)
	}
	return paths
}
