package cogs

import (
	"fmt"

	"SubBot/core/command"

	"github.com/bwmarrin/discordgo"
)

// SlashGroupsCog declares the slash "server" group with an "info" member and
// an empty "settings" subgroup. The remaining members arrive from
// ServerCommandsCog and ServerSettingsCog.
func SlashGroupsCog() *command.Cog {
	server := command.NewGroup("server", "Server related commands.", command.Slash)

	server.MustAddSubcommand(&command.Command{
		Name:        "info",
		Description: "Show this server's name",
		Kind:        command.Slash,
		Run: func(ctx *command.Context) error {
			guild, err := interactionGuild(ctx)
			if err != nil {
				ctx.Reply("This command can only be used in a server.")
				return nil
			}
			ctx.Reply("This server's name is %s", guild.Name)
			return nil
		},
	})

	server.MustAddSubcommand(command.NewGroup("settings", "Server settings commands.", command.Slash))

	return &command.Cog{Name: "SlashGroups", Commands: []*command.Command{server}}
}

// ServerCommandsCog declares two slash subcommands of "server".
func ServerCommandsCog() *command.Cog {
	banner := command.Subcommand("server", &command.Command{
		Name:        "banner",
		Description: "Show this server's banner",
		Kind:        command.Slash,
		Run: func(ctx *command.Context) error {
			guild, err := interactionGuild(ctx)
			if err != nil {
				ctx.Reply("This command can only be used in a server.")
				return nil
			}
			if guild.Banner == "" {
				ctx.Reply("This server does not have a banner.")
				return nil
			}
			ctx.Reply("This server's banner is %s", guild.BannerURL(""))
			return nil
		},
	})

	icon := command.Subcommand("server", &command.Command{
		Name:        "icon",
		Description: "Show this server's icon",
		Kind:        command.Slash,
		Run: func(ctx *command.Context) error {
			guild, err := interactionGuild(ctx)
			if err != nil {
				ctx.Reply("This command can only be used in a server.")
				return nil
			}
			if guild.Icon == "" {
				ctx.Reply("This server does not have an icon.")
				return nil
			}
			ctx.Reply("This server's icon is %s", guild.IconURL(""))
			return nil
		},
	})

	return &command.Cog{Name: "ServerCommands", Commands: []*command.Command{banner, icon}}
}

// ServerSettingsCog declares members of the nested "server settings"
// subgroup.
func ServerSettingsCog() *command.Cog {
	editName := command.Subcommand("server settings", &command.Command{
		Name:        "edit-name",
		Description: "Edit this server's name",
		Kind:        command.Slash,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "new-name",
				Description: "The new server name",
				Required:    true,
			},
		},
		Run: func(ctx *command.Context) error {
			newName := ctx.StringOption("new-name")
			if _, err := ctx.Session.GuildEdit(ctx.Interaction.GuildID, &discordgo.GuildParams{Name: newName}); err != nil {
				return fmt.Errorf("failed to rename server: %w", err)
			}
			ctx.Reply("This server's name has been changed to %s.", newName)
			return nil
		},
	})

	description := command.Subcommand("server settings", &command.Command{
		Name:        "description",
		Description: "Show this server's description",
		Kind:        command.Slash,
		Run: func(ctx *command.Context) error {
			guild, err := interactionGuild(ctx)
			if err != nil {
				ctx.Reply("This command can only be used in a server.")
				return nil
			}
			if guild.Description == "" {
				ctx.Reply("This server does not have a description.")
				return nil
			}
			ctx.Reply("## Server Description:\n%s", guild.Description)
			return nil
		},
	})

	return &command.Cog{Name: "ServerSettings", Commands: []*command.Command{editName, description}}
}

func interactionGuild(ctx *command.Context) (*discordgo.Guild, error) {
	if ctx.Interaction == nil || ctx.Interaction.GuildID == "" {
		return nil, fmt.Errorf("not in a guild")
	}
	guild, err := ctx.Session.State.Guild(ctx.Interaction.GuildID)
	if err != nil {
		return ctx.Session.Guild(ctx.Interaction.GuildID)
	}
	return guild, nil
}
