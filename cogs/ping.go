package cogs

import (
	"SubBot/core/command"
)

// PingCog has no group involvement at all; it shows plain commands pass
// through the manager untouched.
func PingCog() *command.Cog {
	ping := &command.Command{
		Name:        "ping",
		Description: "Simple command to check that bot is alive",
		Kind:        command.Prefix,
		Run: func(ctx *command.Context) error {
			ctx.Reply("Pong!")
			return nil
		},
	}
	pong := &command.Command{
		Name:        "pong",
		Description: "Simple command to check that bot is alive",
		Kind:        command.Prefix,
		Run: func(ctx *command.Context) error {
			ctx.Reply("Ping!")
			return nil
		},
	}
	return &command.Cog{Name: "Ping", Commands: []*command.Command{ping, pong}}
}
