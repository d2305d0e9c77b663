package main

import "strings"

// Run executes the stock command.
func (c *StockCmd) Run(deps *Dependencies) error {
	refreshOnce(deps)

	reply, err := deps.Assistant.Stock(deps.Ctx, strings.Join(c.Category, " "))
	if err != nil {
		return printError(deps, err)
	}

	renderReply(deps.Stdout, reply)
	return nil
}
