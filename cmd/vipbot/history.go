package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/vipbot"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := vipbot.InteractionFilter{Limit: c.Limit}
	if c.User != "" {
		filter.UserID = &c.User
	}

	interactions, err := deps.Interactions.FindInteractions(deps.Ctx, filter)
	if err != nil {
		return printError(deps, err)
	}

	if len(interactions) == 0 {
		fmt.Fprintln(deps.Stdout, "No interactions recorded yet.")
		return nil
	}

	for _, i := range interactions {
		fmt.Fprintf(deps.Stdout, "%s  %s (%s)  %s\n", i.CreatedAt.Local().Format(time.DateTime), i.UserName, i.UserID, i.Query)
		fmt.Fprintf(deps.Stdout, "    %s\n", vipbot.Truncate(i.Answer, 120))
	}
	return nil
}

// Run executes the updates command.
func (c *UpdatesCmd) Run(deps *Dependencies) error {
	updates, err := deps.Updates.FindUpdates(deps.Ctx, c.Limit)
	if err != nil {
		return printError(deps, err)
	}

	if len(updates) == 0 {
		fmt.Fprintln(deps.Stdout, "No catalog updates recorded yet.")
		return nil
	}

	for _, u := range updates {
		rev := (&vipbot.Snapshot{Revision: u.Revision}).ShortRevision()
		fmt.Fprintf(deps.Stdout, "%s  %s  products=%d faq=%d categories=%d\n",
			u.AdoptedAt.Local().Format(time.DateTime), rev, u.Products, u.FAQ, u.Categories)
	}
	return nil
}
