package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/vipbot"
)

// renderReply writes reply as plain text.
func renderReply(w io.Writer, reply *vipbot.Reply) {
	fmt.Fprintln(w, reply.Title)
	if reply.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, reply.Description)
	}
	if len(reply.Fields) > 0 {
		fmt.Fprintln(w)
		for _, f := range reply.Fields {
			if !strings.Contains(f.Value, "\n") {
				fmt.Fprintf(w, "%s: %s\n", f.Name, f.Value)
				continue
			}
			fmt.Fprintln(w, f.Name)
			for _, line := range strings.Split(f.Value, "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}
	if len(reply.Options) > 0 {
		fmt.Fprintln(w)
		for _, o := range reply.Options {
			fmt.Fprintf(w, "  [%s] %s\n", o.Value, o.Label)
		}
	}
	if reply.Footer != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, reply.Footer)
	}
}

// printError reports err on stderr and returns it.
func printError(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", vipbot.ErrorMessage(err))
	return err
}

// refreshOnce loads the catalog before a one-shot command. Failures are
// reported but the command still runs against whatever is cached.
func refreshOnce(deps *Dependencies) {
	result, err := deps.Refresher.Refresh(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: catalog refresh failed: %s\n", vipbot.ErrorMessage(err))
		return
	}
	for _, w := range result.Warnings {
		deps.Logger.Debug("skipped dataset line", "line", w.Line, "reason", w.Reason)
	}
}
