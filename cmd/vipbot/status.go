package main

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	refreshOnce(deps)

	reply, err := deps.Assistant.Status(deps.Ctx)
	if err != nil {
		return printError(deps, err)
	}

	renderReply(deps.Stdout, reply)
	return nil
}
