package format

import (
	"fmt"
	"io"
	"strings"
)

// SeparatorWidth is the width of the rule printed between report sections.
const SeparatorWidth = 60

// Separator is the rule printed between report sections.
var Separator = strings.Repeat("=", SeparatorWidth)

// WriteSeparator writes the section rule.
func WriteSeparator(w io.Writer) {
	fmt.Fprintln(w, Separator)
}

// WriteField writes a "label: value" line.
func WriteField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s: %v\n", label, value)
}

// OrNull returns the pointed-to string, or "null" when s is nil.
func OrNull(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

// WriteBlock calls fn with w, optionally wrapped in a slack code block.
func WriteBlock(w io.Writer, slackMode bool, fn func(io.Writer) error) error {
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	err := fn(w)
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	return err
}
