// Package output renders command results in terminal, markdown, and JSON
// modes. Auto mode picks between styled terminal output and markdown based
// on whether stdout is a TTY.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// OutputMode normalizes a user-supplied format string to a Mode.
// Empty or unrecognized strings fall back to auto.
func OutputMode(s string) Mode {
	switch Mode(s) {
	case ModeText, ModeMarkdown, ModeJSON:
		return Mode(s)
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the configured mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles Styles
}

// NewRenderer creates a renderer. Auto mode resolves against the TTY
// state of out.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = termenv.NewOutput(f).ColorProfile() != termenv.Ascii
	}
	return newRenderer(out, errOut, mode, isTTY)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Used in tests where out is a buffer.
func NewRendererWithTTY(out, errOut io.Writer, mode Mode, isTTY bool) *Renderer {
	return newRenderer(out, errOut, mode, isTTY)
}

func newRenderer(out, errOut io.Writer, mode Mode, isTTY bool) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	styled := isTTY && mode != ModeJSON && mode != ModeMarkdown
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: NewStyles(styled),
	}
}

// EffectiveMode resolves auto to a concrete mode: text on a terminal,
// markdown when piped.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the underlying output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Styles returns the style set for this renderer.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Println writes a line to the output writer.
func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		fmt.Fprintf(r.out, "**%s**\n", msg)
		return
	}
	fmt.Fprintln(r.out, r.styles.Success.Render("✓ "+msg))
}

// Error writes an error message to the error writer.
func (r *Renderer) Error(msg string) {
	fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
}

// Warning writes a warning message.
func (r *Renderer) Warning(msg string) {
	fmt.Fprintln(r.out, r.styles.Warning.Render("! "+msg))
}

// Header writes a section header appropriate for the current mode.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		fmt.Fprintln(r.out, FormatHeader(level, text))
		return
	}
	fmt.Fprintln(r.out, r.styles.Header1.Render(text))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
