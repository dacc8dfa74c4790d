package cli

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownCommand is returned by Run for an unrecognized command.
var ErrUnknownCommand = errors.New("unknown command")

// Run executes command. args are the command's own arguments.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	var err error
	switch command {
	case "verify":
		err = c.runVerify(ctx)
	case "register":
		err = c.runRegister(ctx)
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "feed":
		err = c.runFeed(ctx, args)
	case "share":
		err = c.runShare(ctx, args)
	case "like":
		err = c.runLike(ctx, args)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	// Истекшая сессия переводит состояние в Anonymous
	return c.session.Observe(err)
}
