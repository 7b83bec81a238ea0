package action

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Host writes workflow commands and step files for the running job.
type Host struct {
	Out    io.Writer
	Getenv func(string) string
}

// NewHost returns a host bound to stdout and the process environment.
func NewHost() *Host {
	return &Host{Out: os.Stdout, Getenv: os.Getenv}
}

// InActions reports whether the process runs inside a GitHub Actions job.
func (h *Host) InActions() bool {
	return h.Getenv("GITHUB_ACTIONS") == "true"
}

func (h *Host) StartGroup(title string) {
	if h.InActions() {
		fmt.Fprintf(h.Out, "::group::%s\n", title)
		return
	}
	fmt.Fprintln(h.Out, title)
}

func (h *Host) EndGroup() {
	if h.InActions() {
		fmt.Fprintln(h.Out, "::endgroup::")
	}
}

// SetOutput records a step output in $GITHUB_OUTPUT, or prints it when the
// file is not available.
func (h *Host) SetOutput(name, value string) error {
	path := h.Getenv("GITHUB_OUTPUT")
	if path == "" {
		fmt.Fprintf(h.Out, "%s=%s\n", name, value)
		return nil
	}
	return appendLine(path, formatKeyValue(name, value))
}

// AddPath prepends dir to PATH for this process and for later steps.
func (h *Host) AddPath(dir string) error {
	if err := os.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH")); err != nil {
		return err
	}
	if path := h.Getenv("GITHUB_PATH"); path != "" {
		return appendLine(path, dir+"\n")
	}
	return nil
}

// Fail prints err as an error annotation.
func (h *Host) Fail(err error) {
	if h.InActions() {
		fmt.Fprintf(h.Out, "::error::%s\n", escapeData(err.Error()))
		return
	}
	fmt.Fprintf(h.Out, "error: %s\n", err.Error())
}

func formatKeyValue(name, value string) string {
	if !strings.Contains(value, "\n") {
		return fmt.Sprintf("%s=%s\n", name, value)
	}
	delimiter := "ghadelimiter_" + randomToken()
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
}

func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line)
	return err
}

// escapeData applies the workflow command escaping for message data.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

func randomToken() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
