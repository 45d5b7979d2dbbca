// Package frontend finds the decision points of Go functions and decides
// them with the symdec algorithms. Functions are loaded with go/packages,
// compiled into SSA form and translated into the value model.
package frontend

import (
	"go/types"
	"sort"
	"strings"

	"github.com/ajalab/symdec/hier"
	"github.com/ajalab/symdec/val"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// Program is a set of loaded packages in SSA form.
type Program struct {
	packages  []*ssa.Package
	hierarchy *hier.GoTypes
}

// LoadPackages loads Go packages from package paths or file paths.
func LoadPackages(patterns ...string) ([]*packages.Package, error) {
	conf := &packages.Config{
		Mode: packages.LoadAllSyntax,
	}
	queries := make([]string, len(patterns))
	for i, p := range patterns {
		queries[i] = p
		if strings.HasSuffix(p, ".go") {
			queries[i] = "file=" + p
		}
	}
	pkgs, err := packages.Load(conf, queries...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load the target packages")
	}
	if len(pkgs) == 0 {
		return nil, errors.New("no packages could be loaded")
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Errorf("failed to load package %s: %v", pkg.PkgPath, pkg.Errors)
		}
		// It is possible that pkg.IllTyped becomes true but pkg.Errors has no error records.
		if pkg.IllTyped {
			return nil, errors.Errorf("package %s contains type error", pkg.PkgPath)
		}
	}
	return pkgs, nil
}

// Load loads the packages matching patterns and builds their SSA form.
func Load(patterns ...string) (*Program, error) {
	pkgs, err := LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	prog, ssaPkgs := ssautil.AllPackages(pkgs, ssa.BuilderMode(0))
	for i, ssaPkg := range ssaPkgs {
		if ssaPkg == nil {
			return nil, errors.Errorf("failed to compile package %s into SSA form", pkgs[i])
		}
	}
	prog.Build()

	typesPkgs := make([]*types.Package, len(pkgs))
	for i, pkg := range pkgs {
		typesPkgs[i] = pkg.Types
	}
	h := hier.NewGoTypes(typesPkgs...)
	// Workers share h: declare every box before they start.
	for t := val.Boolean; t < val.Reference; t++ {
		h.Box(t.String())
	}
	return &Program{
		packages:  ssaPkgs,
		hierarchy: h,
	}, nil
}

// Hierarchy returns the class hierarchy of the named types of the loaded packages.
func (p *Program) Hierarchy() *hier.GoTypes {
	return p.hierarchy
}

// Func returns the package-level function name of the loaded packages.
func (p *Program) Func(name string) (*ssa.Function, error) {
	for _, pkg := range p.packages {
		if f := pkg.Func(name); f != nil {
			return f, nil
		}
	}
	return nil, errors.Errorf("function %s not found", name)
}

// Funcs returns the package-level functions of the loaded packages sorted
// by name, or those named by names if there are any.
func (p *Program) Funcs(names ...string) ([]*ssa.Function, error) {
	if len(names) > 0 {
		fs := make([]*ssa.Function, len(names))
		for i, name := range names {
			f, err := p.Func(name)
			if err != nil {
				return nil, err
			}
			fs[i] = f
		}
		return fs, nil
	}
	var fs []*ssa.Function
	for _, pkg := range p.packages {
		for _, m := range pkg.Members {
			if f, ok := m.(*ssa.Function); ok && f.Name() != "init" && len(f.Blocks) > 0 {
				fs = append(fs, f)
			}
		}
	}
	sort.Slice(fs, func(i, j int) bool {
		return fs[i].String() < fs[j].String()
	})
	return fs, nil
}
