package diagnostics

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes diagnostics to a terminal or log stream.
type Printer struct {
	out      io.Writer
	location *color.Color
	severity *color.Color
	code     *color.Color
}

// NewPrinter creates a printer; colors are only emitted when useColor is set.
func NewPrinter(out io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:      out,
		location: color.New(color.Bold),
		severity: color.New(color.FgRed, color.Bold),
		code:     color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.location, p.severity, p.code} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Print writes every diagnostic found in err. Errors that are neither
// diagnostics nor faults are printed verbatim.
func (p *Printer) Print(err error) {
	if err == nil {
		return
	}
	var fault *Fault
	if errors.As(err, &fault) {
		fmt.Fprintf(p.out, "%s %s %s\n",
			p.location.Sprint(fault.Pos.String()+":"),
			p.severity.Sprint("internal error:"),
			fault.Kind+": "+fault.Message)
		return
	}
	list := Collect(err)
	if len(list) == 0 {
		fmt.Fprintf(p.out, "%s %s\n", p.severity.Sprint("error:"), err)
		return
	}
	for _, d := range list {
		pos := d.Pos
		if pos.File == "" {
			pos.File = d.File
		}
		fmt.Fprintf(p.out, "%s %s%s %s\n",
			p.location.Sprint(pos.String()+":"),
			p.severity.Sprint("error"),
			p.code.Sprint("["+string(d.Code)+"]"),
			d.Title()+": "+d.Message)
	}
}
