package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/webitel/nfpm-build/internal/action"
	"github.com/webitel/nfpm-build/internal/cli/shared"
)

type fakeRunner struct {
	calls []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	if name == "nfpm" && len(args) > 4 && args[0] == "package" {
		return os.WriteFile(filepath.Join(args[4], "app_1.2.3_amd64.deb"), []byte("deb"), 0o644)
	}
	return nil
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return []byte("nfpm version v2.41.1\n"), f.Run(ctx, name, args...)
}

type harness struct {
	app    *appContext
	stdout *bytes.Buffer
	runner *fakeRunner
	env    map[string]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{stdout: &bytes.Buffer{}, runner: &fakeRunner{}, env: map[string]string{}}
	h.app = &appContext{
		host:   &action.Host{Out: h.stdout, Getenv: func(k string) string { return h.env[k] }},
		runner: h.runner,
		stdout: h.stdout,
	}
	return h
}

func (h *harness) run(args ...string) error {
	cmd := newRootCmd(h.app, "1.0.0-test")
	cmd.SetOut(h.stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	temp := t.TempDir()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	if err := os.Chdir(temp); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	return temp
}

func setPackageInputs(t *testing.T) {
	t.Helper()
	t.Setenv("INPUT_PACKAGE-NAME", "app")
	t.Setenv("INPUT_PACKAGE-DESCRIPTION", "demo application")
	t.Setenv("INPUT_VERSION", "1.2.3")
	t.Setenv("INPUT_MAINTAINER", "Ops <ops@example.com>")
}

func TestMapExitCode(t *testing.T) {
	if got := mapExitCode(newExitCodeError(shared.ExitBuildError, errors.New("x"))); got != shared.ExitBuildError {
		t.Fatalf("expected %d got %d", shared.ExitBuildError, got)
	}
	if got := mapExitCode(errors.New("other")); got != shared.ExitFailed {
		t.Fatalf("expected %d got %d", shared.ExitFailed, got)
	}
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t)
	if err := h.run("version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if h.stdout.String() != "1.0.0-test\n" {
		t.Fatalf("unexpected version output: %q", h.stdout.String())
	}
}

func TestContentsCommandPrintsDescriptors(t *testing.T) {
	h := newHarness(t)
	err := h.run("contents", "--contents", "src=./app dst=/usr/bin/app mode=0755 owner=root group=root\nsrc=./etc dst=/etc/app type=config")
	if err != nil {
		t.Fatalf("contents failed: %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"contents:\n", "- src: ./app\n", "mode: 0o755\n", "type: config\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestContentsCommandLiteralPolicyKeepsText(t *testing.T) {
	h := newHarness(t)
	if err := h.run("contents", "--mode-policy", "literal", "--contents", "src=./app dst=/usr/bin/app mode=0755"); err != nil {
		t.Fatalf("contents failed: %v", err)
	}
	out := h.stdout.String()
	if !strings.Contains(out, `mode: "0755"`) && !strings.Contains(out, "mode: '0755'") {
		t.Fatalf("expected literal mode in output:\n%s", out)
	}
}

func TestContentsCommandExitCodes(t *testing.T) {
	h := newHarness(t)
	err := h.run("contents", "--contents", "src=./app")
	if got := mapExitCode(err); got != shared.ExitContentError {
		t.Fatalf("expected exit %d, got %d (%v)", shared.ExitContentError, got, err)
	}

	h = newHarness(t)
	err = h.run("contents", "--mode-policy", "symbolic", "--contents", "src=a dst=b")
	if got := mapExitCode(err); got != shared.ExitConfigError {
		t.Fatalf("expected exit %d, got %d (%v)", shared.ExitConfigError, got, err)
	}
}

func TestContentsFileConflictsWithContentsFlag(t *testing.T) {
	temp := t.TempDir()
	file := filepath.Join(temp, "contents.yaml")
	if err := os.WriteFile(file, []byte("- src: a\n  dst: b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	h := newHarness(t)
	if err := h.run("contents", "--contents-file", file); err != nil {
		t.Fatalf("contents-file failed: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "dst: b\n") {
		t.Fatalf("unexpected output:\n%s", h.stdout.String())
	}

	h = newHarness(t)
	err := h.run("contents", "--contents-file", file, "--contents", "src=a dst=b")
	if got := mapExitCode(err); got != shared.ExitConfigError {
		t.Fatalf("expected exit %d, got %d (%v)", shared.ExitConfigError, got, err)
	}
}

func TestConfigCommandExitCodes(t *testing.T) {
	chdirTemp(t)
	h := newHarness(t)
	err := h.run("config")
	if got := mapExitCode(err); got != shared.ExitConfigError {
		t.Fatalf("expected exit %d for missing inputs, got %d (%v)", shared.ExitConfigError, got, err)
	}

	setPackageInputs(t)
	h = newHarness(t)
	err = h.run("config", "--contents", "src=./missing dst=/usr/bin/missing")
	if got := mapExitCode(err); got != shared.ExitContentError {
		t.Fatalf("expected exit %d for missing source, got %d (%v)", shared.ExitContentError, got, err)
	}
	if err == nil || !strings.Contains(err.Error(), "source file not found: ./missing") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigCommandBacksUpExistingFile(t *testing.T) {
	temp := chdirTemp(t)
	setPackageInputs(t)
	if err := os.WriteFile(".nfpm.yaml", []byte("name: old\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	h := newHarness(t)
	if err := h.run("config", "--backup", "timestamp"); err != nil {
		t.Fatalf("config failed: %v", err)
	}
	backups, err := filepath.Glob(filepath.Join(temp, ".nfpm.yaml.*.bak"))
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected one backup, got %v %v", backups, err)
	}
	b, err := os.ReadFile(".nfpm.yaml")
	if err != nil || !strings.HasPrefix(string(b), "name: app\n") {
		t.Fatalf("config not regenerated: %q %v", b, err)
	}
}

func TestBuildCommandRunsPipeline(t *testing.T) {
	temp := chdirTemp(t)
	setPackageInputs(t)
	if err := os.WriteFile("app", []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write source: %v", err)
	}
	outputFile := filepath.Join(temp, "github_output")

	h := newHarness(t)
	h.env["GITHUB_OUTPUT"] = outputFile
	err := h.run("build", "--skip-install", "--target", "out", "--contents", "src=./app dst=/usr/bin/app mode=0755")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(h.runner.calls) == 0 || h.runner.calls[0] != "nfpm package --packager deb --target out --config .nfpm.yaml" {
		t.Fatalf("unexpected calls: %v", h.runner.calls)
	}
	cfg, err := os.ReadFile(filepath.Join(temp, ".nfpm.yaml"))
	if err != nil {
		t.Fatalf("config missing: %v", err)
	}
	if !strings.Contains(string(cfg), "dst: /usr/bin/app\n") {
		t.Fatalf("unexpected config:\n%s", cfg)
	}
	outputs, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("outputs missing: %v", err)
	}
	want := "packages=" + filepath.Join("out", "app_1.2.3_amd64.deb") + "\nconfig-file=.nfpm.yaml\n"
	if string(outputs) != want {
		t.Fatalf("unexpected outputs:\n%s", outputs)
	}
}

func TestBuildCommandInvalidFormat(t *testing.T) {
	chdirTemp(t)
	setPackageInputs(t)
	h := newHarness(t)
	err := h.run("build", "--skip-install", "--formats", "deb,msi")
	if got := mapExitCode(err); got != shared.ExitConfigError {
		t.Fatalf("expected exit %d, got %d (%v)", shared.ExitConfigError, got, err)
	}
	if !strings.Contains(err.Error(), "invalid package format: msi") {
		t.Fatalf("unexpected error: %v", err)
	}
}
