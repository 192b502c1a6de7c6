package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is the human-readable rendering chosen by each command.
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON.
	FormatJSON Format = "json"
	// FormatNDJSON prints one JSON value per line, list items separately.
	FormatNDJSON Format = "ndjson"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
	// FormatTable is an aligned table for lists.
	FormatTable Format = "table"
)

// ParseFormat converts a flag value to a Format. "" means FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatNDJSON, FormatYAML, FormatTable:
		return f, nil
	default:
		return "", errors.New("invalid --output format (expected text|json|ndjson|yaml|table)")
	}
}

// IsStructured reports whether the format is machine-readable.
func IsStructured(format Format) bool {
	switch format {
	case FormatJSON, FormatNDJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Table is a pre-rendered table.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Printer writes values in one format.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Format returns the printer's format.
func (p *Printer) Format() Format {
	return p.format
}

// Print writes data in the structured formats. Data is first brought to its
// plain JSON form, so every format renders the same value and the jq query
// from ctx sees exactly what --output json would print.
func (p *Printer) Print(ctx context.Context, data any) error {
	value, err := toJSONValue(data)
	if err != nil {
		return err
	}

	if query := QueryFromContext(ctx); query != "" {
		results, err := runQuery(ctx, query, value)
		if err != nil {
			return err
		}
		if p.format == FormatNDJSON || len(results) != 1 {
			return p.printEach(results)
		}
		value = results[0]
	}

	switch p.format {
	case FormatJSON:
		return p.printJSON(value)
	case FormatNDJSON:
		if list, ok := value.([]any); ok {
			return p.printEach(list)
		}
		return p.printEach([]any{value})
	case FormatYAML:
		return p.printYAML(value)
	case FormatText:
		return p.printText(value)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// PrintTable writes t as aligned columns.
func (p *Printer) PrintTable(t Table) error {
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func (p *Printer) printJSON(value any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func (p *Printer) printEach(values []any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printYAML(value any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// printText is the fallback for commands without their own rendering:
// scalars as is, anything else as compact JSON.
func (p *Printer) printText(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(p.w, v)
		return err
	case []any:
		for _, item := range v {
			if err := p.printText(item); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		return p.printEach([]any{v})
	default:
		_, err := fmt.Fprintln(p.w, v)
		return err
	}
}

// runQuery evaluates a jq expression against value.
func runQuery(ctx context.Context, query string, value any) ([]any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}

	var results []any
	iter := code.RunWithContext(ctx, value)
	for {
		v, ok := iter.Next()
		if !ok {
			return results, nil
		}
		if err, isErr := v.(error); isErr {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				return results, nil
			}
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}
}

// toJSONValue converts data to maps, slices and scalars the way
// encoding/json would see it. gojq only walks such values.
func toJSONValue(data any) (any, error) {
	switch data.(type) {
	case nil, string, bool, float64, map[string]any, []any:
		return data, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	return value, nil
}
