// Package analysis defines the small shared vocabulary between pipeline
// stages and the assembler.
//
// Stages never abort the pipeline. Instead of swallowing failures they
// return Warnings alongside whatever (possibly degraded) value they could
// produce, and the assembler decides what to surface.
package analysis

import "fmt"

// Warning describes a non-fatal problem encountered by a pipeline stage.
type Warning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Warningf builds a Warning for a stage with a formatted message.
func Warningf(stage, format string, args ...any) Warning {
	return Warning{Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// Messages returns just the message strings, in order.
func Messages(warnings []Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Message
	}
	return out
}
