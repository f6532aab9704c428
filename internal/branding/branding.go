// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	RepoFolder  string `yaml:"repo_folder"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "capegen",
			DisplayName: "Capegen",
			Description: "Scaffold custom BeagleV-Fire capes and generate their Libero designs",
			HomeDir:     ".capegen",
			EnvPrefix:   "CAPEGEN",
			RepoFolder:  "gateware",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "capegen").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".capegen").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CAPEGEN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// RepoFolder returns the folder name the gateware repository is expected to
// be checked out as.
func RepoFolder() string { load(); return defaults.RepoFolder }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("tool") → "CAPEGEN_TOOL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
