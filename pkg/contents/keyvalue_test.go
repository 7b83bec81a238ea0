package contents

import (
	"errors"
	"strings"
	"testing"
)

func TestParseKeyValueLines(t *testing.T) {
	input := `
src=./app dst=/usr/bin/app type=file mode=0755
src=./config.conf dst=/etc/app/config.conf type=config mode=0644 owner=app group=app
`
	got, err := NewParser(ModeLiteral, nil).Parse(input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(got))
	}
	if got[0].FileInfo == nil || got[0].FileInfo.Mode.String() != "0755" {
		t.Fatalf("unexpected first file info: %+v", got[0].FileInfo)
	}
	if got[0].FileInfo.Owner != "" || got[0].FileInfo.Group != "" {
		t.Fatalf("unexpected ownership: %+v", got[0].FileInfo)
	}
	fi := got[1].FileInfo
	if got[1].Kind != KindConfig || fi.Mode.String() != "0644" || fi.Owner != "app" || fi.Group != "app" {
		t.Fatalf("unexpected second descriptor: %+v %+v", got[1], fi)
	}
}

func TestParseKeyValueQuotedValues(t *testing.T) {
	got, err := NewParser(ModeLiteral, nil).Parse(`src="./my app" dst="/usr/bin/my app" type='file' mode='0755'`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	d := got[0]
	if d.Source != "./my app" || d.Destination != "/usr/bin/my app" {
		t.Fatalf("unexpected endpoints: %q -> %q", d.Source, d.Destination)
	}
	if d.Kind != KindFile || d.FileInfo.Mode.String() != "0755" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
}

func TestParseKeyValueWithoutFileInfo(t *testing.T) {
	got, err := Parse("src=./app dst=/usr/bin/app type=file")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got[0].FileInfo != nil {
		t.Fatalf("expected no file info, got %+v", got[0].FileInfo)
	}
}

func TestParseKeyValueUnknownKeyWarns(t *testing.T) {
	log := &recordingLogger{}
	got, err := NewParser(ModeOctal, log).Parse("src=./app dst=/usr/bin/app foo=bar")
	if err != nil {
		t.Fatalf("unknown key must not fail: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one descriptor, got %d", len(got))
	}
	if len(log.warnings) != 1 || !strings.Contains(log.warnings[0], `"foo"`) {
		t.Fatalf("expected warning naming foo, got %v", log.warnings)
	}
}

func TestParseKeyValueKeysAreCaseInsensitive(t *testing.T) {
	got, err := Parse("SRC=./app Dst=/usr/bin/app TYPE=dir")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got[0].Source != "./app" || got[0].Destination != "/usr/bin/app" || got[0].Kind != KindDir {
		t.Fatalf("unexpected descriptor: %+v", got[0])
	}
}

func TestParseKeyValueInvalidLine(t *testing.T) {
	_, err := Parse("src=./app dst=/usr/bin/app\njust some words")
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if !strings.Contains(err.Error(), `"just some words"`) {
		t.Fatalf("expected offending line in message, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Line != "just some words" {
		t.Fatalf("expected ParseError with line, got %#v", err)
	}
}

func TestParseKeyValueEmptyType(t *testing.T) {
	if _, err := Parse(`src=a dst=/a type=""`); !errors.Is(err, ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
}

func TestStripQuotes(t *testing.T) {
	cases := map[string]string{
		`"a b"`: "a b",
		`'a'`:   "a",
		`a`:     "a",
		`'a`:    "a",
		`"`:     "",
		`""`:    "",
	}
	for in, want := range cases {
		if got := stripQuotes(in); got != want {
			t.Fatalf("stripQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}
