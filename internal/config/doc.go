// Package config manages user-level settings stored at ~/.capegen/config.yaml.
// Values may be overridden by CAPEGEN_* environment variables, e.g. the Libero
// executable name (CAPEGEN_TOOL) or extra reserved cape names
// (CAPEGEN_EXTRA_CAPES).
package config
