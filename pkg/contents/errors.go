package contents

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedInput       = errors.New("malformed input")
	ErrStructuralMismatch   = errors.New("structural mismatch")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidEnumValue     = errors.New("invalid enum value")
	ErrInvalidMode          = errors.New("invalid mode")
)

// ParseError reports why a contents description was rejected. Kind is one of
// the Err* sentinels above; Err is the underlying library error, if any.
type ParseError struct {
	Kind   error
	Format Format
	Index  int
	Line   string
	Value  string
	Err    error

	msg string
}

func (e *ParseError) Error() string {
	if e.Format == FormatYAML {
		return "failed to parse YAML contents: " + e.msg
	}
	return e.msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func yamlError(kind error, index int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:   kind,
		Format: FormatYAML,
		Index:  index,
		msg:    fmt.Sprintf(format, args...),
	}
}

func lineError(kind error, line string, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:   kind,
		Format: FormatKeyValue,
		Index:  -1,
		Line:   line,
		msg:    fmt.Sprintf(format, args...),
	}
}

func kindsList() string {
	names := make([]string, 0, len(allowedKinds))
	for _, k := range allowedKinds {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
