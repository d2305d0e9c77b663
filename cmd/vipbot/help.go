package main

// Run executes the help command.
func (c *HelpCmd) Run(deps *Dependencies) error {
	reply, err := deps.Assistant.Help(deps.Ctx, c.Topic)
	if err != nil {
		return printError(deps, err)
	}

	renderReply(deps.Stdout, reply)
	return nil
}
