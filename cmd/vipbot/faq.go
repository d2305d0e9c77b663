package main

import "github.com/fwojciec/vipbot"

// Run executes the faq command.
func (c *FAQCmd) Run(deps *Dependencies) error {
	refreshOnce(deps)

	var reply *vipbot.Reply
	var err error
	if c.Index == 0 {
		reply, err = deps.Assistant.FAQ(deps.Ctx)
	} else {
		reply, err = deps.Assistant.FAQAnswer(deps.Ctx, c.Index)
	}
	if err != nil {
		return printError(deps, err)
	}

	renderReply(deps.Stdout, reply)
	return nil
}
