package cogs

import (
	"fmt"

	"SubBot/core/command"

	"github.com/bwmarrin/discordgo"
)

// HybridGroupsCog declares the hybrid "channel" group, reachable both as a
// prefixed text command and a slash command.
func HybridGroupsCog() *command.Cog {
	channel := command.NewGroup("channel", "Channel related commands.", command.Hybrid)
	channel.Run = func(ctx *command.Context) error {
		if ctx.Interaction != nil {
			ctx.Reply("Channel command group. Use `/channel help` for more information.")
		} else {
			ctx.Reply("Channel command group. See `%schannel help` for more information.", ctx.Prefix)
		}
		return nil
	}

	return &command.Cog{Name: "HybridGroups", Commands: []*command.Command{channel}}
}

// HybridChannelCog declares hybrid subcommands of "channel" and the hybrid
// "utils" subgroup.
func HybridChannelCog() *command.Cog {
	info := command.Subcommand("channel", &command.Command{
		Name:        "info",
		Description: "Show channel information",
		Kind:        command.Hybrid,
		Run: func(ctx *command.Context) error {
			ch, err := contextChannel(ctx)
			if err != nil {
				return err
			}
			ctx.Reply("## Channel Info:\n- Name: %s\n- ID: %s", ch.Name, ch.ID)
			return nil
		},
	})

	topic := command.Subcommand("channel", &command.Command{
		Name:        "topic",
		Description: "Get the channel's topic",
		Kind:        command.Hybrid,
		Run: func(ctx *command.Context) error {
			ch, err := contextChannel(ctx)
			if err != nil {
				return err
			}
			if ch.Topic == "" {
				ctx.Reply("## Channel Topic:\nNo topic set")
				return nil
			}
			ctx.Reply("## Channel Topic:\n%s", ch.Topic)
			return nil
		},
	})

	utils := command.Subcommand("channel", command.NewGroup("utils", "Channel utility commands", command.Hybrid))

	return &command.Cog{Name: "HybridChannel", Commands: []*command.Command{info, topic, utils}}
}

// HybridUtilityCog declares a member of the nested "channel utils" subgroup.
func HybridUtilityCog() *command.Cog {
	membercount := command.Subcommand("channel utils", &command.Command{
		Name:        "membercount",
		Description: "Count members who can see this channel",
		Kind:        command.Hybrid,
		Run: func(ctx *command.Context) error {
			ch, err := contextChannel(ctx)
			if err != nil {
				return err
			}
			guild, err := ctx.Session.State.Guild(ch.GuildID)
			if err != nil {
				return fmt.Errorf("this command can only be used in a server")
			}
			count := 0
			for _, member := range guild.Members {
				perms, err := ctx.Session.State.UserChannelPermissions(member.User.ID, ch.ID)
				if err == nil && perms&discordgo.PermissionViewChannel != 0 {
					count++
				}
			}
			ctx.Reply("## Channel Member Count:\n%d members can see <#%s>", count, ch.ID)
			return nil
		},
	})

	return &command.Cog{Name: "HybridUtility", Commands: []*command.Command{membercount}}
}

func contextChannel(ctx *command.Context) (*discordgo.Channel, error) {
	channelID := ""
	if ctx.Interaction != nil {
		channelID = ctx.Interaction.ChannelID
	} else {
		channelID = ctx.Message.ChannelID
	}
	ch, err := ctx.Session.State.Channel(channelID)
	if err != nil {
		return ctx.Session.Channel(channelID)
	}
	return ch, nil
}
