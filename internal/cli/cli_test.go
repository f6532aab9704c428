package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/capegen-labs/capegen/internal/caperr"
	"github.com/capegen-labs/capegen/internal/toolchain"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		verbose bool
		want    zapcore.Level
		wantErr bool
	}{
		{"info default", "info", false, zapcore.InfoLevel, false},
		{"warn from config", "warn", false, zapcore.WarnLevel, false},
		{"verbose overrides", "error", true, zapcore.DebugLevel, false},
		{"invalid level", "loud", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := newLogger(tt.level, tt.verbose)
			if tt.wantErr {
				if err == nil {
					t.Fatal("newLogger() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("newLogger() error = %v", err)
			}
			if !l.Core().Enabled(tt.want) {
				t.Errorf("level %s not enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && l.Core().Enabled(tt.want-1) {
				t.Errorf("level %s unexpectedly enabled", tt.want-1)
			}
		})
	}
}

func TestRunDoctorReportsAllMisses(t *testing.T) {
	env := toolchain.Env{
		LookPath: func(string) (string, error) { return "", errors.New("missing") },
		Getenv:   func(string) string { return "" },
	}

	var out bytes.Buffer
	err := runDoctor(&out, env, "libero", false)
	if !caperr.Is(err, caperr.KindEnvironment) {
		t.Fatalf("runDoctor() error = %v, want environment error", err)
	}
	if !strings.Contains(err.Error(), "3 toolchain check(s) failed") {
		t.Errorf("runDoctor() error = %q", err)
	}
	if got := strings.Count(out.String(), "[MISS]"); got != 3 {
		t.Errorf("got %d [MISS] lines, want 3:\n%s", got, out.String())
	}
}

func TestRunDoctorAllPresent(t *testing.T) {
	vars := map[string]string{"FPGENPROG": "/opt/fpgenprog", "PATH": "/opt/riscv-unknown-elf-gcc/bin"}
	env := toolchain.Env{
		LookPath: func(file string) (string, error) { return "/opt/bin/" + file, nil },
		Getenv:   func(key string) string { return vars[key] },
	}

	var out bytes.Buffer
	if err := runDoctor(&out, env, "libero", false); err != nil {
		t.Fatalf("runDoctor() error = %v", err)
	}
	if strings.Contains(out.String(), "[MISS]") {
		t.Errorf("unexpected miss:\n%s", out.String())
	}
}

func TestVersionJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	buildVersion, buildCommit, buildDate = "1.4.0-rc.1", "abc1234", "2026-01-01"
	t.Cleanup(func() {
		buildVersion, buildCommit, buildDate = "", "", ""
		versionJSON = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--json"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var info versionInfo
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if info.Version != "1.4.0-rc.1" || info.Commit != "abc1234" {
		t.Errorf("info = %+v", info)
	}
	if info.Semver == nil || info.Semver.Minor != 4 || info.Semver.Prerelease != "rc.1" {
		t.Errorf("semver = %+v", info.Semver)
	}
}
