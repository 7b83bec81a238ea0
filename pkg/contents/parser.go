// Package contents parses the free-form description of files to package into
// nfpm content descriptors. Two input shapes are accepted: a YAML sequence
// (bare or under a top-level contents key) and a line-oriented key=value form.
package contents

import (
	"fmt"
	"strings"
)

// Format is the input shape chosen by Detect.
type Format int

const (
	FormatEmpty Format = iota
	FormatYAML
	FormatKeyValue
)

func (f Format) String() string {
	switch f {
	case FormatEmpty:
		return "empty"
	case FormatYAML:
		return "YAML"
	case FormatKeyValue:
		return "key-value format"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Detect looks only at the leading token of the trimmed input.
func Detect(input string) Format {
	trimmed := strings.TrimSpace(input)
	switch {
	case trimmed == "":
		return FormatEmpty
	case strings.HasPrefix(trimmed, "-"), strings.HasPrefix(trimmed, "contents:"):
		return FormatYAML
	default:
		return FormatKeyValue
	}
}

// Parser turns contents text into descriptors. The zero value parses modes
// with ModeOctal and discards log output.
type Parser struct {
	Policy ModePolicy
	Logger Logger
}

// NewParser returns a parser bound to one mode policy.
func NewParser(policy ModePolicy, logger Logger) *Parser {
	return &Parser{Policy: policy, Logger: logger}
}

// Parse returns every descriptor in input order, or an error and no
// descriptors at all.
func (p *Parser) Parse(input string) ([]Descriptor, error) {
	trimmed := strings.TrimSpace(input)

	var (
		out []Descriptor
		err error
	)
	format := Detect(trimmed)
	switch format {
	case FormatEmpty:
		return []Descriptor{}, nil
	case FormatYAML:
		out, err = p.parseYAML(trimmed)
	default:
		out, err = p.parseKeyValue(trimmed)
	}
	if err != nil {
		return nil, err
	}

	p.logSummary(format, out)
	return out, nil
}

// Parse uses a zero Parser.
func Parse(input string) ([]Descriptor, error) {
	return (&Parser{}).Parse(input)
}

func (p *Parser) logger() Logger {
	if p.Logger == nil {
		return nopLogger{}
	}
	return p.Logger
}

func (p *Parser) logSummary(format Format, descriptors []Descriptor) {
	log := p.logger()
	log.Info(fmt.Sprintf("Parsed %d content files from %s", len(descriptors), format))
	for _, d := range descriptors {
		log.Info(Summary(d))
	}
}

// Summary renders one descriptor as "  src -> dst (kind, mode, owner:group)".
// Mode and ownership are included only when present.
func Summary(d Descriptor) string {
	var b strings.Builder
	kind := d.Kind
	if kind == "" {
		kind = KindFile
	}
	fmt.Fprintf(&b, "  %s -> %s (%s", d.Source, d.Destination, kind)
	if fi := d.FileInfo; fi != nil {
		if fi.Mode != nil {
			b.WriteString(", " + fi.Mode.String())
		}
		if fi.Owner != "" && fi.Group != "" {
			b.WriteString(", " + fi.Owner + ":" + fi.Group)
		}
	}
	b.WriteString(")")
	return b.String()
}
