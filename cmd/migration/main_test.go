package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one", args: nil, want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "garbage", args: []string{"x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSteps(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tt.args)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("parseSteps(%v)=%d,%v want=%d", tt.args, got, err, tt.want)
			}
		})
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("1791187320"); err != nil || v != 1791187320 {
		t.Fatalf("unexpected version: %d %v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if v, err := parseTarget("1791187260"); err != nil || v != 1791187260 {
		t.Fatalf("unexpected target: %d %v", v, err)
	}
	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected error for non numeric target")
	}
}

func TestResolveMigrationsDir_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)

	got, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve migrations dir: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("unexpected migrations dir: %q want %q", got, want)
	}
}

func TestResolveMigrationsDir_SkipsMissing(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", filepath.Join(os.TempDir(), "league-manager-missing-migrations"))
	t.Setenv("MIGRATIONS_PATH", "")
	t.Chdir(t.TempDir())

	if _, err := resolveMigrationsDir(); err == nil {
		t.Fatalf("expected error when no migrations dir exists")
	}
}
