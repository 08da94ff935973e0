package gen

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Interchange formats of EncodeResults.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// EncodeResults writes the results to w in the given interchange format.
// Non-Go emitters consume this output instead of the rendered Go code.
func EncodeResults(w io.Writer, format string, results []*Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return NewGenerationError("encode", "", "json", err)
		}
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("msgpack")
		if err := enc.Encode(results); err != nil {
			return NewGenerationError("encode", "", "msgpack", err)
		}
	default:
		return NewConfigError("Format", format, fmt.Sprintf("unsupported format; use %s or %s", FormatJSON, FormatMsgpack))
	}
	return nil
}

// DecodeResults reads results written by EncodeResults. Decoded results
// carry no Schema.
func DecodeResults(r io.Reader, format string) ([]*Result, error) {
	var results []*Result
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&results); err != nil {
			return nil, fmt.Errorf("condgen: decode json results: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&results); err != nil {
			return nil, fmt.Errorf("condgen: decode msgpack results: %w", err)
		}
	default:
		return nil, NewConfigError("Format", format, fmt.Sprintf("unsupported format; use %s or %s", FormatJSON, FormatMsgpack))
	}
	return results, nil
}
