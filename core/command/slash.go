package command

import (
	"fmt"

	"SubBot/core"

	"github.com/bwmarrin/discordgo"
)

// ApplicationCommands builds the Discord application command definitions for
// everything that should be visible as a slash command: the app universe,
// plus hybrid commands and groups from the text universe.
func (b *Bot) ApplicationCommands() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range b.Commands(AppUniverse) {
		defs = append(defs, commandDefinition(c))
	}
	for _, c := range b.Commands(TextUniverse) {
		if c.Kind == Hybrid {
			defs = append(defs, commandDefinition(c))
		}
	}
	return defs
}

// RegisterApplicationCommands syncs the guild's slash commands with the
// current trees. Bulk overwrite also drops commands we no longer declare.
func (b *Bot) RegisterApplicationCommands(guildID string) error {
	appID := b.Session.State.User.ID
	defs := b.ApplicationCommands()
	if _, err := b.Session.ApplicationCommandBulkOverwrite(appID, guildID, defs); err != nil {
		return fmt.Errorf("failed to register application commands: %w", err)
	}
	core.LogInfoF("Synced %d application command(s) for guild %s", len(defs), guildID)
	return nil
}

func commandDefinition(c *Command) *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: orDefault(c.Description, c.Name),
		Type:        discordgo.ChatApplicationCommand,
	}
	if c.IsGroup() {
		def.Options = groupOptions(c, 0)
	} else {
		def.Options = c.Options
	}
	return def
}

// groupOptions turns a group's members into subcommand / subcommand-group
// options. Discord allows one level of subgroups; deeper groups are skipped
// with a warning since they can still be reached as text commands.
func groupOptions(group *Command, depth int) []*discordgo.ApplicationCommandOption {
	var opts []*discordgo.ApplicationCommandOption
	for _, sub := range group.Subcommands() {
		if sub.Kind == Prefix {
			continue
		}
		if sub.IsGroup() {
			if depth >= 1 {
				core.LogWarnF("Group %s is nested too deep for slash registration, skipping", sub.QualifiedName())
				continue
			}
			opts = append(opts, &discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        sub.Name,
				Description: orDefault(sub.Description, sub.Name),
				Options:     groupOptions(sub, depth+1),
			})
			continue
		}
		opts = append(opts, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        sub.Name,
			Description: orDefault(sub.Description, sub.Name),
			Options:     sub.Options,
		})
	}
	return opts
}

// HandleInteraction routes an application command interaction down the
// matching command tree and runs the leaf handler.
func (b *Bot) HandleInteraction(session *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()

	cmd := b.Lookup(AppUniverse, data.Name)
	if cmd == nil {
		cmd = b.Lookup(TextUniverse, data.Name)
		if cmd == nil || cmd.Kind != Hybrid {
			core.LogWarnF("No command found for interaction: %s", data.Name)
			return
		}
	}

	options := data.Options
	for cmd.IsGroup() && len(options) == 1 {
		t := options[0].Type
		if t != discordgo.ApplicationCommandOptionSubCommand && t != discordgo.ApplicationCommandOptionSubCommandGroup {
			break
		}
		sub := cmd.Subcommand(options[0].Name)
		if sub == nil {
			core.LogWarnF("No subcommand %q below %s", options[0].Name, cmd.QualifiedName())
			return
		}
		cmd = sub
		options = options[0].Options
	}

	if cmd.Run == nil {
		core.LogDebugF("Interaction hit group %s with no handler", cmd.QualifiedName())
		return
	}

	ctx := &Context{Session: session, Interaction: i, Command: cmd, Prefix: "/", Options: options}
	core.LogDebugF("Running %s: %s", cmd.Kind, cmd.QualifiedName())
	if err := cmd.Run(ctx); err != nil {
		b.handleError(ctx, err)
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
