// Command runner accepts one JSON task description on stdin (or as the first
// argument), drives a browser agent to completion and writes exactly one
// JSON result document to stdout. All diagnostics go to stderr and the
// process exits zero even on internal failure: callers parse stdout, they do
// not inspect exit codes.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"browser-runner/internal/di"
	"browser-runner/internal/runner"
)

func main() {
	container := di.NewContainer()
	defer container.Close()

	req, err := runner.ReadRequest(os.Stdin, os.Args[1:])
	if err != nil {
		writeDocument(runner.FailureResponse{Success: false, Error: err.Error()})
		return
	}

	container.Logger.Info("Task started", "task", req.Task, "provider", req.LLMProvider)

	resp, err := container.Runner.Run(context.Background(), req)
	if err != nil {
		container.Logger.Error("Run failed", "error", err)
		writeDocument(runner.FailureResponse{Success: false, Error: err.Error()})
		return
	}

	container.Logger.Info("Run finished", "success", resp.Success)
	writeDocument(resp)
}

// writeDocument emits v as the single stdout JSON document: UTF-8, non-ASCII
// kept literal, no HTML escaping, no trailing newline.
func writeDocument(v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		// Last resort: still one parseable document.
		fmt.Fprintf(os.Stdout, `{"success":false,"error":"failed to encode response"}`)
		return
	}
	os.Stdout.Write(bytes.TrimRight(buf.Bytes(), "\n"))
}
