package contents

import (
	"fmt"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`(\w+)=("[^"]*"|'[^']*'|\S+)`)

func (p *Parser) parseKeyValue(input string) ([]Descriptor, error) {
	var out []Descriptor
	for _, raw := range strings.Split(input, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		d, err := p.parseLine(line)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (p *Parser) parseLine(line string) (Descriptor, error) {
	tokens := tokenPattern.FindAllStringSubmatch(line, -1)
	if len(tokens) == 0 {
		return Descriptor{}, lineError(ErrMalformedInput, line, "invalid key-value format: \"%s\"", line)
	}

	d := Descriptor{Kind: KindFile}
	fi := &FileInfo{}
	for _, token := range tokens {
		key, value := token[1], stripQuotes(token[2])
		switch strings.ToLower(key) {
		case keySource:
			d.Source = value
		case keyDest:
			d.Destination = value
		case keyMode:
			mode, err := ParseMode(value, p.Policy)
			if err != nil {
				pe := lineError(ErrInvalidMode, line, "invalid mode: %v", err)
				pe.Value = value
				return Descriptor{}, pe
			}
			fi.Mode = mode
		case keyOwner:
			fi.Owner = value
		case keyGroup:
			fi.Group = value
		case keyType:
			kind, err := ParseKind(value)
			if err != nil || value == "" {
				pe := lineError(ErrInvalidEnumValue, line,
					"invalid type \"%s\". Must be one of: %s", value, kindsList())
				pe.Value = value
				return Descriptor{}, pe
			}
			d.Kind = kind
		default:
			p.logger().Warning(fmt.Sprintf("Unknown key \"%s\" in content file definition", key))
		}
	}

	if !requireEndpoints(d.Source, d.Destination) {
		return Descriptor{}, lineError(ErrMissingRequiredField, line,
			"content file must have both 'src' and 'dst' properties: \"%s\"", line)
	}
	if !fi.empty() {
		d.FileInfo = fi
	}
	return d, nil
}

// stripQuotes drops one leading and one trailing quote character.
func stripQuotes(value string) string {
	if value != "" && (value[0] == '"' || value[0] == '\'') {
		value = value[1:]
	}
	if n := len(value); n > 0 && (value[n-1] == '"' || value[n-1] == '\'') {
		value = value[:n-1]
	}
	return value
}
