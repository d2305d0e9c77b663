package main

import (
	"strings"

	"github.com/fwojciec/vipbot"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	refreshOnce(deps)

	user := vipbot.User{ID: c.UserID, Name: c.UserName}
	reply, err := deps.Assistant.Ask(deps.Ctx, user, strings.Join(c.Question, " "))
	if err != nil {
		return printError(deps, err)
	}

	renderReply(deps.Stdout, reply)
	return nil
}
