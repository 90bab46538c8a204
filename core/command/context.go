package command

import (
	"fmt"

	"SubBot/core"

	"github.com/bwmarrin/discordgo"
)

// Context carries one invocation into a handler. Exactly one of Message and
// Interaction is set, depending on whether the command arrived as a prefixed
// text message or a slash interaction.
type Context struct {
	Session     *discordgo.Session
	Message     *discordgo.Message
	Interaction *discordgo.InteractionCreate
	Command     *Command
	Prefix      string
	// Args holds the words after the command path for text invocations.
	Args []string
	// Options holds the leaf options for slash invocations.
	Options []*discordgo.ApplicationCommandInteractionDataOption
}

// Reply sends a message back to where the command came from.
func (c *Context) Reply(format string, v ...interface{}) {
	c.respond(fmt.Sprintf(format, v...), false)
}

// ReplyEphemeral is Reply, but only the invoking user sees the response.
// Text invocations have no ephemeral equivalent and reply in-channel.
func (c *Context) ReplyEphemeral(format string, v ...interface{}) {
	c.respond(fmt.Sprintf(format, v...), true)
}

func (c *Context) respond(content string, ephemeral bool) {
	if c.Interaction != nil {
		data := &discordgo.InteractionResponseData{Content: content}
		if ephemeral {
			data.Flags = discordgo.MessageFlagsEphemeral
		}
		err := c.Session.InteractionRespond(c.Interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		})
		if err != nil {
			core.LogError("Failed to respond to interaction: ", err)
		}
		return
	}
	if _, err := c.Session.ChannelMessageSend(c.Message.ChannelID, content); err != nil {
		core.LogError("Failed to send reply: ", err)
	}
}

// StringOption returns the named slash option's string value, or the first
// text argument for prefixed invocations of hybrid commands. Empty string
// when absent.
func (c *Context) StringOption(name string) string {
	for _, opt := range c.Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	if len(c.Args) > 0 {
		return c.Args[0]
	}
	return ""
}
