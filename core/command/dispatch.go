package command

import (
	"strings"

	"SubBot/core"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

// Dispatch parses a text message and runs the matching prefix or hybrid
// command. Messages without the configured prefix, or from the bot itself,
// are ignored.
func (b *Bot) Dispatch(session *discordgo.Session, message *discordgo.Message) {
	// Short-circuit if author of the message is the bot itself to avoid loops
	if message.Author == nil || message.Author.ID == session.State.User.ID {
		return
	}

	trimmed := strings.TrimPrefix(message.Content, b.prefix)
	if trimmed == message.Content {
		return
	}

	// Split the command into parameters, and clean them up.
	args := funk.FilterString(strings.Split(trimmed, " "), func(str string) bool {
		return strings.Trim(str, " \t\r") != ""
	})
	if len(args) == 0 {
		return
	}

	core.LogDebug("Parsed parameters: ", args)

	cmd := b.Lookup(TextUniverse, args[0])
	args = args[1:]
	ctx := &Context{Session: session, Message: message, Prefix: b.prefix, Args: args}
	if cmd == nil {
		if b.Fallback != nil && b.Fallback(ctx) {
			core.LogDebug("   => handled by fallback.")
		}
		return
	}

	// Descend group trees as long as the next word names a subcommand.
	for cmd.IsGroup() && len(args) > 0 {
		sub := cmd.Subcommand(args[0])
		if sub == nil {
			break
		}
		cmd = sub
		args = args[1:]
	}
	ctx.Command = cmd
	ctx.Args = args

	if cmd.Run == nil {
		if cmd.IsGroup() {
			names := funk.Map(cmd.Subcommands(), func(sub *Command) string { return sub.Name }).([]string)
			ctx.Reply("Subcommands of %s%s: %s", b.prefix, cmd.QualifiedName(), strings.Join(names, ", "))
		}
		return
	}

	core.LogDebugF("Running %s: %s", cmd.Kind, cmd.QualifiedName())
	if err := cmd.Run(ctx); err != nil {
		b.handleError(ctx, err)
	}
}

// handleError routes a handler error to the nearest error handler up the
// group chain, falling back to the log.
func (b *Bot) handleError(ctx *Context, err error) {
	for c := ctx.Command; c != nil; c = c.Parent() {
		if c.OnError != nil {
			c.OnError(ctx, err)
			return
		}
	}
	core.LogErrorF("Command %s failed: %s", ctx.Command.QualifiedName(), err)
}
