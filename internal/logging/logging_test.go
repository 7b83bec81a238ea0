package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestReporterWritesWorkflowCommands(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	r := Reporter{Logger: zerolog.New(NewConsoleWriter(&buf, true))}

	r.Info("Parsed 1 content files from YAML")
	r.Warning(`Unknown key "foo" in content file definition`)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
	if lines[0] != "Parsed 1 content files from YAML" {
		t.Fatalf("unexpected info line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "::warning::") || !strings.Contains(lines[1], `Unknown key "foo"`) {
		t.Fatalf("unexpected warning line: %q", lines[1])
	}
}

func TestWorkflowLevel(t *testing.T) {
	cases := map[string]string{
		zerolog.LevelInfoValue:  "",
		zerolog.LevelDebugValue: "::debug::",
		zerolog.LevelWarnValue:  "::warning::",
		zerolog.LevelErrorValue: "::error::",
	}
	for level, want := range cases {
		if got := workflowLevel(level); got != want {
			t.Fatalf("workflowLevel(%q) = %q, want %q", level, got, want)
		}
	}
}

func TestSetupLoggerVerbosity(t *testing.T) {
	var buf bytes.Buffer
	SetupLogger(0, &buf, false)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %v", zerolog.GlobalLevel())
	}
	SetupLogger(2, &buf, false)
	if zerolog.GlobalLevel() != zerolog.TraceLevel {
		t.Fatalf("expected trace level, got %v", zerolog.GlobalLevel())
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
