package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI provides a clean interface for running rxbench in tests.
// It manages a temp directory and environment variables.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp directory and an empty
// environment, so no global config is picked up.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	return &CLI{
		t:   t,
		Dir: t.TempDir(),
		Env: map[string]string{},
	}
}

// Run executes rxbench with stdin and args and returns stdout, stderr, and
// exit code. Args should not include "rxbench".
func (r *CLI) Run(stdin []byte, args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"rxbench"}, args...)
	code := Run(bytes.NewReader(stdin), &outBuf, &errBuf, fullArgs, r.Env)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes rxbench and fails the test if it returns non-zero.
// Returns stdout.
func (r *CLI) MustRun(stdin []byte, args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(stdin, args...)
	if code != 0 {
		r.t.Fatalf("rxbench %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return stdout
}

// MustFail executes rxbench and fails the test if it succeeds.
// Also fails if stdout is not empty. Returns trimmed stderr.
func (r *CLI) MustFail(stdin []byte, args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(stdin, args...)
	if code == 0 {
		r.t.Fatalf("rxbench %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	if stdout != "" {
		r.t.Fatalf("rxbench %v failed but stdout should be empty\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// Path returns name joined to the temp directory.
func (r *CLI) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// WriteFile writes content to name inside the temp directory and returns the
// full path.
func (r *CLI) WriteFile(name, content string) string {
	r.t.Helper()

	path := r.Path(name)

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		r.t.Fatalf("failed to create dir for %s: %v", name, err)
	}

	err = os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write %s: %v", name, err)
	}

	return path
}

// ReadFile reads name from the temp directory.
func (r *CLI) ReadFile(name string) string {
	r.t.Helper()

	content, err := os.ReadFile(r.Path(name))
	if err != nil {
		r.t.Fatalf("failed to read %s: %v", name, err)
	}

	return string(content)
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
