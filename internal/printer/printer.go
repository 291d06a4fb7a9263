package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/labsite/go-admin-client/core"
)

// Output formats.
const (
	FormatTable   = "table"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Printer renders command results to Out and status lines to Err.
type Printer struct {
	Format string
	Out    io.Writer
	Err    io.Writer
}

// New returns a printer writing to stdout and stderr.
func New(format string) *Printer {
	return &Printer{Format: format, Out: os.Stdout, Err: os.Stderr}
}

// Print renders v in the configured format. Table output accepts anything
// that serializes to a JSON object or array.
func (p *Printer) Print(v any) error {
	switch strings.ToLower(p.Format) {
	case "", FormatTable:
		return p.table(v)
	case FormatJSON:
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.Out, string(raw))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(p.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		enc := msgpack.NewEncoder(p.Out)
		enc.SetCustomStructTag("json")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", p.Format)
	}
}

func (p *Printer) table(v any) error {
	renderable, err := core.ToRenderable(v)
	if err != nil {
		return err
	}
	// Paginated payloads print their rows followed by the page position.
	if record, ok := renderable.(core.Record); ok {
		if items, isList := record["items"].([]any); isList {
			rows, _ := core.ToRenderable(items)
			fmt.Fprintln(p.Out, rows.PrettyTable())
			if meta, hasMeta := record["meta"].(map[string]any); hasMeta {
				cyan.Fprintf(p.Out, "page %v/%v, %v items\n", meta["currentPage"], meta["totalPages"], meta["totalItems"])
			}
			return nil
		}
	}
	_, err = fmt.Fprintln(p.Out, renderable.PrettyTable())
	return err
}

// Success prints a success message in green with a checkmark prefix
func (p *Printer) Success(format string, a ...any) {
	green.Fprintf(p.Err, "✓ %s\n", fmt.Sprintf(format, a...))
}

// Warning prints a warning message in yellow
func (p *Printer) Warning(format string, a ...any) {
	yellow.Fprintf(p.Err, "! %s\n", fmt.Sprintf(format, a...))
}

// Step prints a step message with emphasis (used in multi-step operations)
func (p *Printer) Step(format string, a ...any) {
	cyan.Fprintf(p.Err, "→ %s\n", fmt.Sprintf(format, a...))
}

// Error prints title in red with an optional explanation and returns an
// error carrying the title.
func (p *Printer) Error(title string, err error) error {
	red.Fprintf(p.Err, "%s\n", title)
	if err != nil {
		fmt.Fprintf(p.Err, "%s\n", core.ErrorMessage(err))
	}
	return fmt.Errorf("%s", title)
}
