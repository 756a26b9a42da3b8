package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/classview/internal/systems"
)

const samplePath = "../testdata/uniclass_sample.json"

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return runWithConfig(t, filepath.Join(t.TempDir(), "none.yml"), args...)
}

func runWithConfig(t *testing.T, cfgPath string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--config", cfgPath))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err = execute(context.Background())
	return out.String(), errOut.String(), err
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	stdout, _, err := run(t, samplePath, dir, "uniclass")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("index.html missing: %v", err)
	}
	for _, want := range []string{"Top-level items: 2", "Total items: 6", "Maximum depth: 3"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestGenerateUnknownSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	_, stderr, err := run(t, samplePath, dir, "foo")
	if !errors.Is(err, systems.ErrUnknownSystem) {
		t.Fatalf("err = %v, want ErrUnknownSystem", err)
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Errorf("output directory should not exist, stat err = %v", statErr)
	}
	for _, want := range append(systems.Keys(), "Usage:") {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestGenerateMissingArgs(t *testing.T) {
	_, stderr, err := run(t, samplePath)
	var ue *usageError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want usage error", err)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Errorf("stderr should contain usage:\n%s", stderr)
	}
}

func TestGenerateMissingInput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	_, stderr, err := run(t, filepath.Join(t.TempDir(), "missing.json"), dir, "uniclass")
	if err == nil {
		t.Fatal("expected error")
	}
	var ue *usageError
	if errors.As(err, &ue) {
		t.Error("a read failure is not a usage error")
	}
	if strings.Contains(stderr, "Usage:") {
		t.Errorf("stderr should not contain usage:\n%s", stderr)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "index.html")); !os.IsNotExist(statErr) {
		t.Errorf("index.html should not exist, stat err = %v", statErr)
	}
}

func TestSystemsCommand(t *testing.T) {
	stdout, _, err := run(t, "systems")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, p := range systems.All() {
		if !strings.Contains(stdout, p.Key) || !strings.Contains(stdout, p.Title) {
			t.Errorf("systems output missing %s:\n%s", p.Key, stdout)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(stdout) != "classview "+Version {
		t.Errorf("version output = %q", stdout)
	}
}

func TestBuildWithoutTargets(t *testing.T) {
	_, _, err := run(t, "build")
	if err == nil || !strings.Contains(err.Error(), "no targets configured") {
		t.Errorf("err = %v, want no targets", err)
	}
}

func TestBuildFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "classview.yml")
	out := filepath.Join(dir, "site")
	yml := "targets:\n  - input: " + samplePath + "\n    system: uniclass\n    output: " + out + "\n"
	if err := os.WriteFile(cfgPath, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runWithConfig(t, cfgPath, "build")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "index.html")); err != nil {
		t.Errorf("index.html missing: %v", err)
	}
	if !strings.Contains(stdout, "Total items: 6") {
		t.Errorf("stdout missing summary:\n%s", stdout)
	}
}

func TestHelpDescribesExportShape(t *testing.T) {
	t.Cleanup(func() { _ = rootCmd.Flags().Set("help", "false") })
	stdout, _, err := run(t, "--help")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"System.Items.Item", "Children.Item"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "flat JSON list") {
		t.Error("help still describes the export as a flat list")
	}
}
