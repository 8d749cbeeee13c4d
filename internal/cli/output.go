package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dlehdeod1/newcornerkicks/internal/config"
	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
	"github.com/dlehdeod1/newcornerkicks/internal/views"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// JSON reports whether machine-readable output was requested
func (o *Output) JSON() bool {
	return o.format == config.OutputJSON
}

// Print writes data as JSON, or calls text to render it for humans
func (o *Output) Print(data any, text func(w io.Writer) error) error {
	if o.JSON() {
		return o.printJSON(data)
	}
	return text(o.out)
}

// PrintTable writes data as JSON or t as an aligned table
func (o *Output) PrintTable(data any, t *views.Table) error {
	return o.Print(data, func(w io.Writer) error {
		if t.Len() == 0 {
			_, err := fmt.Fprintln(w, "(없음)")
			return err
		}
		return t.Render(w)
	})
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) error {
	if o.JSON() {
		return o.printJSON(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(o.out, msg)
	return err
}

// PrintEvent writes one streamed item: a compact JSON line or the text line
func (o *Output) PrintEvent(data any, line string) error {
	if o.JSON() {
		return json.NewEncoder(o.out).Encode(data)
	}
	_, err := fmt.Fprintln(o.out, line)
	return err
}

// PrintError outputs an error with the server's message when there is one
func (o *Output) PrintError(err error) {
	msg := httpclient.MessageOf(err)
	if o.JSON() {
		body := map[string]any{"error": msg}
		var re *httpclient.RequestError
		if errors.As(err, &re) && re.Status != 0 {
			body["status"] = re.Status
		}
		data, _ := json.Marshal(body)
		_, _ = fmt.Fprintln(o.errOut, string(data))
		return
	}
	_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", msg)
}

func (o *Output) printJSON(data any) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
