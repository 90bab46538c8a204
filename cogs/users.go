// Package cogs holds the example cogs the demo bot loads. The user, server
// and channel families each declare their group in one cog and its members
// in others, which is exactly what the subcommands manager is for.
package cogs

import (
	"fmt"
	"strings"

	"SubBot/core/command"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

// GroupsCog declares the prefix "user" group. Its members live in
// UserInfoCog and UtilitiesCog.
func GroupsCog() *command.Cog {
	user := command.NewGroup("user", "User related commands.", command.Prefix)
	user.Run = func(ctx *command.Context) error {
		ctx.Reply("User command group. See `%suser help` for more information.", ctx.Prefix)
		return nil
	}
	user.OnError = func(ctx *command.Context, err error) {
		ctx.Reply("An error occurred: %s", err)
	}

	user.MustAddSubcommand(&command.Command{
		Name:        "help",
		Description: "List user commands",
		Kind:        command.Prefix,
		Run: func(ctx *command.Context) error {
			lines := funk.Map(user.Subcommands(), func(sub *command.Command) string {
				return fmt.Sprintf("- `%s%s`", ctx.Prefix, sub.QualifiedName())
			}).([]string)
			ctx.Reply("User help command. Available commands:\n%s", strings.Join(lines, "\n"))
			return nil
		},
	})

	return &command.Cog{Name: "Groups", Commands: []*command.Command{user}}
}

// UserInfoCog declares two subcommands of "user" and the "utils" subgroup,
// without ever seeing the group itself.
func UserInfoCog() *command.Cog {
	info := command.Subcommand("user", &command.Command{
		Name:        "info",
		Description: "Show info for the mentioned user",
		Kind:        command.Prefix,
		Run: func(ctx *command.Context) error {
			target, err := mentionedUser(ctx)
			if err != nil {
				return err
			}
			ctx.Reply("## User Info:\n- Name: %s\n- ID: %s", target.Username, target.ID)
			return nil
		},
	})

	avatar := command.Subcommand("user", &command.Command{
		Name:        "avatar",
		Description: "Show the mentioned user's avatar",
		Kind:        command.Prefix,
		Run: func(ctx *command.Context) error {
			target, err := mentionedUser(ctx)
			if err != nil {
				return err
			}
			ctx.Reply("## User Avatar:\n%s", target.AvatarURL(""))
			return nil
		},
	})

	utils := command.Subcommand("user", command.NewGroup("utils", "User utility commands", command.Prefix))
	utils.Run = func(ctx *command.Context) error {
		ctx.Reply("## User Utility Commands:")
		return nil
	}

	return &command.Cog{Name: "UserInfo", Commands: []*command.Command{info, avatar, utils}}
}

// UtilitiesCog declares a member of the nested "user utils" subgroup.
func UtilitiesCog() *command.Cog {
	whenjoin := command.Subcommand("user utils", &command.Command{
		Name:        "whenjoin",
		Description: "Show when the mentioned user joined this server",
		Kind:        command.Prefix,
		Run: func(ctx *command.Context) error {
			target, err := mentionedUser(ctx)
			if err != nil {
				return err
			}
			member, err := ctx.Session.GuildMember(ctx.Message.GuildID, target.ID)
			if err != nil {
				return fmt.Errorf("member not found: %s", target.Username)
			}
			ctx.Reply("## User Join Date:\n%s joined this server <t:%d:R>.", target.Username, member.JoinedAt.Unix())
			return nil
		},
	})

	return &command.Cog{Name: "Utilities", Commands: []*command.Command{whenjoin}}
}

// mentionedUser returns the first @mention, or an error the group's error
// handler turns into a reply.
func mentionedUser(ctx *command.Context) (*discordgo.User, error) {
	if ctx.Message == nil || len(ctx.Message.Mentions) == 0 {
		return nil, fmt.Errorf("missing required argument: user")
	}
	return ctx.Message.Mentions[0], nil
}
