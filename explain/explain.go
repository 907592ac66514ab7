// Package explain renders evaluation traces as human- or machine-readable
// justifications.
//
// The text form is an indented tree showing each predicate's outcome, which
// child settled a composite, and which children were skipped by
// short-circuiting. The JSON form is the one a downstream consumer (a
// frontend rendering "why did this claim fail") would use. Rendering is a
// pure function of the trace.
package explain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lexkit/lexengine/eval"
	"github.com/lexkit/lexengine/predicate"
)

// Format identifies an explanation output format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// FormatInfo provides metadata about an explanation format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatText: {
		Name:        FormatText,
		MIMEType:    "text/plain",
		Extension:   ".txt",
		Description: "Indented plain-text justification tree",
	},
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "Machine-readable trace for downstream consumers",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Explain renders a trace in the requested format.
func Explain(trace *eval.Trace, format Format) (string, error) {
	if trace == nil {
		return "", fmt.Errorf("trace is required")
	}

	switch format {
	case FormatText:
		var b strings.Builder
		renderText(&b, trace, 0)
		return b.String(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(trace, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal trace: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported explanation format %q", format)
	}
}

func renderText(b *strings.Builder, node *eval.Trace, depth int) {
	indent := strings.Repeat("  ", depth)

	if !node.Evaluated() {
		fmt.Fprintf(b, "%s%s %s: skipped (short-circuited)\n",
			indent, node.Predicate, kindLabel(node.Kind))
		return
	}

	fmt.Fprintf(b, "%s%s %s = %t", indent, node.Predicate, kindLabel(node.Kind), node.Result)
	if node.FactID != "" && depth == 0 {
		fmt.Fprintf(b, "  [fact: %s]", node.FactID)
	}
	if decider := node.Decider(); decider != nil {
		fmt.Fprintf(b, "  (settled by %s)", decider.Predicate)
	}
	b.WriteString("\n")

	for _, child := range node.Children {
		renderText(b, child, depth+1)
	}
}

func kindLabel(kind predicate.Kind) string {
	if kind == "" {
		return "[?]"
	}
	return "[" + string(kind) + "]"
}
