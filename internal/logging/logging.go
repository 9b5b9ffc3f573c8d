// Package logging writes single-line JSON log entries shared by start-up code.
package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

// std shares stdout with the access log and never touches the global logger's flags.
var std = log.New(os.Stdout, "", 0)

// SetOutput redirects every subsequent entry to w.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// JSON prints data as one JSON line, adding ts (in loc) and a level.
// When level is absent it is derived from status: "error" maps to error, anything else to info.
// data is not modified.
func JSON(loc *time.Location, data map[string]any) {
	if loc == nil {
		loc = time.UTC
	}

	entry := make(map[string]any, len(data)+2)
	for k, v := range data {
		entry[k] = v
	}
	entry["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := entry["level"]; !ok {
		if entry["status"] == "error" {
			entry["level"] = "error"
		} else {
			entry["level"] = "info"
		}
	}

	b, err := json.Marshal(entry)
	if err != nil {
		std.Printf("failed to marshal log entry: %v", err)
		return
	}
	std.Println(string(b))
}

// Error logs a failed event with the error message attached.
func Error(loc *time.Location, component, event string, err error) {
	JSON(loc, map[string]any{
		"component":     component,
		"event":         event,
		"status":        "error",
		"error_message": err.Error(),
	})
}
