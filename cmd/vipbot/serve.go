package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It returns when SIGINT or SIGTERM is
// received, or when the server fails.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := deps.Refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return deps.Server.Run(ctx, c.Addr)
	})

	deps.Logger.Info("vipbot serving", "addr", c.Addr, "interval", c.Interval)
	return g.Wait()
}
