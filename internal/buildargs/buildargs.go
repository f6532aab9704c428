// Package buildargs turns a cape's build options into the SCRIPT_ARGS string
// read by BUILD_BVF_GATEWARE.tcl.
package buildargs

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/capegen-labs/capegen/internal/source"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fixed leading tokens.
const (
	ScriptArgs       = "SCRIPT_ARGS:"
	OnlyCreateDesign = "ONLY_CREATE_DESIGN"
)

// M2 option values accepted by the design script.
const (
	M2None    = "NONE"
	M2Default = "DEFAULT"
)

// option maps a build-opts key to the script token it produces.
type option struct {
	key     string
	token   string
	resolve func(value string) (resolved, warning string)
}

// options is the emission order. Map iteration order never affects output.
var options = []option{
	{key: "top-level-name", token: "TOP_LEVEL_NAME"},
	{key: "version", token: "DESIGN_VERSION"},
	{key: "cape", token: "CAPE_OPTION"},
	{key: "m2", token: "M2_OPTION", resolve: resolveM2},
	{key: "syzygy", token: "SYZYGY_OPTION"},
	{key: "mipi_csi", token: "MIPI_CSI_OPTION"},
}

// resolveM2 accepts NONE and DEFAULT in any case and falls back to DEFAULT.
func resolveM2(value string) (string, string) {
	// Casers keep state, so each call gets its own.
	v := cases.Upper(language.Und).String(value)
	if v == M2None || v == M2Default {
		return v, ""
	}
	return M2Default, fmt.Sprintf("M2_OPTION must be %s or %s, got %q; using %s", M2None, M2Default, value, M2Default)
}

// Keys returns the recognized option keys in emission order.
func Keys() []string {
	keys := make([]string, len(options))
	for i, o := range options {
		keys[i] = o.key
	}
	return keys
}

// Args is a built argument list.
type Args struct {
	Tokens   []string
	Warnings []string
	// Ignored lists unrecognized option keys, sorted.
	Ignored []string
}

// String joins the tokens with single spaces.
func (a *Args) String() string {
	return strings.Join(a.Tokens, " ")
}

// Build creates the argument list for a project at projectPath. Unknown keys
// in opts are skipped; an out-of-range m2 value degrades to DEFAULT with a
// warning.
func Build(projectPath string, opts source.BuildOptions) *Args {
	a := &Args{
		Tokens: []string{
			ScriptArgs,
			OnlyCreateDesign,
			"PROJECT_LOCATION:" + projectPath,
			"PROG_EXPORT_PATH:" + projectPath,
		},
	}

	for _, o := range options {
		value, ok := opts[o.key]
		if !ok {
			continue
		}
		if o.resolve != nil {
			resolved, warning := o.resolve(value)
			if warning != "" {
				a.Warnings = append(a.Warnings, warning)
			}
			value = resolved
		}
		a.Tokens = append(a.Tokens, o.token+":"+value)
	}

	known := make(map[string]bool, len(options))
	for _, o := range options {
		known[o.key] = true
	}
	for k := range opts {
		if !known[k] {
			a.Ignored = append(a.Ignored, k)
		}
	}
	slices.Sort(a.Ignored)
	return a
}

// Builder wraps Build with the run's output and logging.
type Builder struct {
	Out io.Writer
	Log *zap.Logger
}

// Build builds the arguments, logs warnings, and echoes the final string to
// b.Out.
func (b *Builder) Build(projectPath string, opts source.BuildOptions) *Args {
	log := b.Log
	if log == nil {
		log = zap.NewNop()
	}

	a := Build(projectPath, opts)
	for _, w := range a.Warnings {
		log.Warn(w)
	}
	if len(a.Ignored) > 0 {
		log.Debug("ignoring unrecognized build options",
			zap.Strings("keys", a.Ignored),
			zap.Strings("recognized", Keys()))
	}
	if v, ok := opts["version"]; ok {
		if _, err := semver.NewVersion(v); err != nil {
			log.Info("design version is not a semantic version; passing it through unchanged",
				zap.String("version", v))
		}
	}

	if b.Out != nil {
		fmt.Fprintf(b.Out, "Script arguments: %s\n", a)
	}
	return a
}
