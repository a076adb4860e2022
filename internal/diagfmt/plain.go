package diagfmt

import (
	"fmt"
	"io"

	"github.com/rwiggins1/adequate-c/internal/diag"
)

// Plain prints every diagnostic in insertion order as
//
//	filename:line:column: error|warning: message
//
// followed by a blank line and the bag summary. An empty bag prints nothing.
func Plain(w io.Writer, bag *diag.Bag) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	for _, d := range bag.Items() {
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", d.Filename, d.Line, d.Column, d.Severity.Label(), d.Message); err != nil {
			return err
		}
	}
	summary := diag.Summary(bag)
	if summary == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "\n%s\n", summary)
	return err
}
