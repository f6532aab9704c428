// Package layout checks that capegen runs from the top of a gateware checkout
// and resolves every path a run needs into an immutable Plan.
package layout

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/capegen-labs/capegen/internal/caperr"
	"github.com/capegen-labs/capegen/internal/capes"
	"github.com/capegen-labs/capegen/internal/source"
)

// Fixed locations inside the gateware repository.
const (
	GitMarker    = ".git"
	DesignSubdir = "sources/FPGA-design"
	CapeSubdir   = DesignSubdir + "/script_support/components/CAPE"
	BuildScript  = "BUILD_BVF_GATEWARE.tcl"
)

// Layout holds the absolute paths of a validated gateware checkout.
type Layout struct {
	RepoRoot  string
	CapeDir   string
	DesignDir string
	Script    string
}

// Plan is everything a run needs, resolved once. It is read-only after
// Resolve returns.
type Plan struct {
	Layout Layout

	Template string
	NewCape  string

	// ProjectPath is <new-project-path>/<NewCape>, where Libero creates the
	// project and exports programming files.
	ProjectPath string

	// CapePath is <CapeDir>/<NewCape>, the cloned cape sources.
	CapePath string

	// TemplatePath is <CapeDir>/<Template>.
	TemplatePath string

	BuildOpts source.BuildOptions
	Force     bool
}

// Resolver validates a source entry against the repository on disk.
type Resolver struct {
	// RepoName is the required base name of the working directory.
	RepoName string
	Capes    *capes.Registry
}

// CheckRepo verifies that dir is the top of a checkout named r.RepoName with
// a cape storage directory, and returns its layout.
func (r *Resolver) CheckRepo(dir string) (Layout, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return Layout{}, caperr.Wrap(caperr.KindLayout, err, "resolving %s", dir)
	}

	if filepath.Base(root) != r.RepoName || !exists(filepath.Join(root, GitMarker)) {
		return Layout{}, caperr.New(caperr.KindLayout,
			"this tool is expected to run at the top level of the %q repository (cwd: %s)", r.RepoName, root)
	}

	l := Layout{
		RepoRoot:  root,
		CapeDir:   filepath.Join(root, filepath.FromSlash(CapeSubdir)),
		DesignDir: filepath.Join(root, filepath.FromSlash(DesignSubdir)),
	}
	l.Script = filepath.Join(l.DesignDir, BuildScript)

	if !isDir(l.CapeDir) {
		return Layout{}, caperr.New(caperr.KindLayout, "capes are expected to be stored at %s", CapeSubdir)
	}
	return l, nil
}

// Resolve validates e against the checkout at cwd and returns the run plan.
// The first failed check is returned; nothing is defaulted.
func (r *Resolver) Resolve(cwd string, e *source.Entry, force bool) (*Plan, error) {
	l, err := r.CheckRepo(cwd)
	if err != nil {
		return nil, err
	}

	if r.Capes.Contains(e.CapeName) {
		return nil, caperr.New(caperr.KindSchema,
			"new cape name %q cannot be the same as a built-in cape name", e.CapeName)
	}
	if !r.Capes.Contains(e.CapeTemplate) {
		return nil, caperr.New(caperr.KindSchema,
			"template cape %q should be a built-in cape or added to the list", e.CapeTemplate)
	}

	parent := e.NewProjectPath
	if !filepath.IsAbs(parent) {
		parent = filepath.Join(l.RepoRoot, parent)
	}
	parent = filepath.Clean(parent)
	if !exists(parent) {
		return nil, caperr.New(caperr.KindSchema, "the new-project-path %s does not exist", parent)
	}

	projectPath := filepath.Join(parent, e.CapeName)
	if exists(projectPath) {
		return nil, caperr.New(caperr.KindSchema,
			"the new-project-path %s already contains a %s folder", parent, e.CapeName)
	}

	return &Plan{
		Layout:       l,
		Template:     e.CapeTemplate,
		NewCape:      e.CapeName,
		ProjectPath:  projectPath,
		CapePath:     filepath.Join(l.CapeDir, e.CapeName),
		TemplatePath: filepath.Join(l.CapeDir, e.CapeTemplate),
		BuildOpts:    maps.Clone(e.BuildOpts),
		Force:        force,
	}, nil
}

// String renders the plan for dry runs.
func (p *Plan) String() string {
	return fmt.Sprintf("template %s -> cape %s\n  cape sources:   %s\n  project path:   %s\n  build script:   %s",
		p.Template, p.NewCape, p.CapePath, p.ProjectPath, p.Layout.Script)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
