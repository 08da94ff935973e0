package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by errors.Is on the structured errors below.
var (
	ErrInvalidSchema    = errors.New("condgen: invalid schema")
	ErrInvalidConfig    = errors.New("condgen: invalid configuration")
	ErrGenerationFailed = errors.New("condgen: code generation failed")
)

// SchemaError reports a schema the helpers cannot be planned for. It aborts
// the generation of the enclosing schema.
type SchemaError struct {
	Type    string // entity the error is about, e.g. an association target
	Field   string // originating column, if any
	Schema  string // enclosing schema
	Pos     string // file:line of the originating element
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	if e.Pos != "" {
		fmt.Fprintf(&b, "%s: ", e.Pos)
	}
	b.WriteString("condgen: schema error")
	if e.Type != "" {
		fmt.Fprintf(&b, " on type %s", e.Type)
	}
	if e.Field != "" {
		column := e.Field
		if e.Schema != "" {
			column = e.Schema + "." + column
		}
		fmt.Fprintf(&b, " field %s", column)
	}
	writeDetail(&b, e.Message, e.Cause)
	return b.String()
}

func (e *SchemaError) Unwrap() error { return e.Cause }

func (e *SchemaError) Is(target error) bool { return target == ErrInvalidSchema }

// ConfigError reports an invalid generator or CLI option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("condgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("condgen: config error for %q: %s", e.Option, e.Message)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// NewConfigError returns a ConfigError for option.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// GenerationError wraps a failure of one phase ("plan", "render", "write"
// or "encode") of a run.
type GenerationError struct {
	Phase   string
	Schema  string
	File    string
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("condgen: generation error")
	if e.Phase != "" {
		fmt.Fprintf(&b, " in phase %s", e.Phase)
	}
	if e.Schema != "" {
		fmt.Fprintf(&b, " for %s", e.Schema)
	}
	if e.File != "" {
		fmt.Fprintf(&b, " (file: %s)", e.File)
	}
	writeDetail(&b, e.Message, e.Cause)
	return b.String()
}

func (e *GenerationError) Unwrap() error { return e.Cause }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// NewGenerationError returns a GenerationError of phase for schema.
func NewGenerationError(phase, schema, message string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, Schema: schema, Message: message, Cause: cause}
}

func writeDetail(b *strings.Builder, message string, cause error) {
	if message != "" {
		b.WriteString(": " + message)
	}
	if cause != nil {
		b.WriteString(": " + cause.Error())
	}
}

// IsSchemaError reports whether err wraps a *SchemaError.
func IsSchemaError(err error) bool { return isError[*SchemaError](err) }

// IsConfigError reports whether err wraps a *ConfigError.
func IsConfigError(err error) bool { return isError[*ConfigError](err) }

func isError[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
