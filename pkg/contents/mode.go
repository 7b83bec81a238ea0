package contents

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModePolicy selects how a parser represents file modes.
type ModePolicy int

const (
	// ModeOctal keeps only the permission bits, e.g. 0755 becomes 493.
	ModeOctal ModePolicy = iota
	// ModeLiteral keeps the mode text exactly as written, e.g. "0755".
	ModeLiteral
)

const maxPerm = 0o7777

func (p ModePolicy) String() string {
	switch p {
	case ModeOctal:
		return "octal"
	case ModeLiteral:
		return "literal"
	default:
		return fmt.Sprintf("ModePolicy(%d)", int(p))
	}
}

// ParseModePolicy maps "octal" or "literal" to a policy. Empty selects ModeOctal.
func ParseModePolicy(value string) (ModePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "octal":
		return ModeOctal, nil
	case "literal", "string":
		return ModeLiteral, nil
	default:
		return ModeOctal, fmt.Errorf("invalid mode policy %q: must be octal or literal", value)
	}
}

// Mode is a file permission value read from octal text.
type Mode struct {
	literal string
	perm    uint32
}

// ParseMode interprets text as base 8. An optional 0o prefix is accepted.
// Under ModeLiteral the input text is kept for re-serialization.
func ParseMode(text string, policy ModePolicy) (*Mode, error) {
	raw := strings.TrimSpace(text)
	digits := raw
	if len(digits) > 2 && (digits[:2] == "0o" || digits[:2] == "0O") {
		digits = digits[2:]
	}
	if digits == "" || len(digits) > 5 {
		return nil, fmt.Errorf("mode %q must be an octal value", text)
	}
	perm, err := strconv.ParseUint(digits, 8, 32)
	if err != nil || perm > maxPerm {
		return nil, fmt.Errorf("mode %q must be an octal value", text)
	}
	m := &Mode{perm: uint32(perm)}
	if policy == ModeLiteral {
		m.literal = raw
	}
	return m, nil
}

// OctalMode builds a Mode from permission bits.
func OctalMode(perm uint32) *Mode {
	return &Mode{perm: perm & maxPerm}
}

// Perm returns the permission bits regardless of policy.
func (m Mode) Perm() uint32 {
	return m.perm
}

// Literal returns the preserved text, empty for ModeOctal values.
func (m Mode) Literal() string {
	return m.literal
}

func (m Mode) String() string {
	if m.literal != "" {
		return m.literal
	}
	return fmt.Sprintf("%04o", m.perm)
}

// MarshalYAML writes literal modes as strings and octal modes as an unquoted
// 0o-prefixed integer, so the value is never re-read as decimal.
func (m Mode) MarshalYAML() (interface{}, error) {
	if m.literal != "" {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.literal}, nil
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: "0o" + strconv.FormatUint(uint64(m.perm), 8)}, nil
}

// UnmarshalYAML reads the scalar text, never the decoded integer, so 0755 and
// '0755' produce the same value.
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: mode must be a scalar", node.Line)
	}
	policy := ModeOctal
	if node.ShortTag() == "!!str" {
		policy = ModeLiteral
	}
	parsed, err := ParseMode(node.Value, policy)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}
