package cogs

import (
	"fmt"
	"strings"

	"SubBot/core/command"
	"SubBot/core/database"

	"github.com/thoas/go-funk"
)

// CustomCog manages user-defined reply commands stored in the database.
func CustomCog() *command.Cog {
	addcmd := &command.Command{
		Name:        "addcmd",
		Description: "Add new custom command. Arguments: *<command> <text>*",
		Kind:        command.Prefix,
		Run: func(ctx *command.Context) error {
			if len(ctx.Args) < 2 {
				return fmt.Errorf("usage: %saddcmd <command> <text>", ctx.Prefix)
			}
			name := strings.ToLower(ctx.Args[0])
			if database.FetchCommandAlias(name) != nil {
				ctx.Reply("Command %s already exists, use %seditcmd to change it.", name, ctx.Prefix)
				return nil
			}
			if database.AddCommandAlias(name, strings.Join(ctx.Args[1:], " ")) {
				ctx.Reply("Added command %s%s.", ctx.Prefix, name)
			}
			return nil
		},
	}

	rmcmd := &command.Command{
		Name:        "rmcmd",
		Description: "Remove existing custom command. Arguments: *<command>*",
		Kind:        command.Prefix,
		Run: func(ctx *command.Context) error {
			if len(ctx.Args) < 1 {
				return fmt.Errorf("usage: %srmcmd <command>", ctx.Prefix)
			}
			name := strings.ToLower(ctx.Args[0])
			if database.RemoveCommandAlias(name) {
				ctx.Reply("Removed command %s%s.", ctx.Prefix, name)
			} else {
				ctx.Reply("No such command: %s", name)
			}
			return nil
		},
	}

	listcmds := &command.Command{
		Name:        "listcmds",
		Description: "List existing custom commands and categories.",
		Kind:        command.Prefix,
		Run: func(ctx *command.Context) error {
			var output []string
			prefix := ctx.Prefix
			if groups := database.FetchCommandGroups(); len(groups) > 0 {
				output = append(output, "**Commands by Category**:")
				lines := funk.Map(groups, func(group database.CommandGroup) string {
					cmdString := "No commands in category."
					if cmds := group.FetchCommands(); len(cmds) > 0 {
						cmdString = strings.Join(funk.Map(cmds, func(cmd database.CommandAlias) string { return cmd.Command }).([]string), ", ")
					}
					return fmt.Sprintf(" **%s%s:**\n\t%s", prefix, group.Command, cmdString)
				}).([]string)
				output = append(output, strings.Join(lines, "\n"))
			} else {
				output = append(output, "**Categories:** \n\tNone found")
			}
			if fetched := database.FetchStandaloneCommands(); len(fetched) > 0 {
				output = append(output, fmt.Sprint("\n**Uncategorised Commands:**\n\t",
					strings.Join(funk.Map(fetched, func(cmd database.CommandAlias) string {
						return cmd.Command
					}).([]string), ", ")))
			} else {
				output = append(output, "\n**Uncategorised Commands:**\n\tNone found")
			}
			ctx.Reply("%s", strings.Join(output, "\n"))
			return nil
		},
	}

	return &command.Cog{Name: "Custom", Commands: []*command.Command{addcmd, rmcmd, listcmds}}
}

// CustomFallback answers prefixed messages that match no registered command
// by looking up a stored alias. Wired as the bot's Fallback.
func CustomFallback(ctx *command.Context) bool {
	words := strings.Fields(strings.TrimPrefix(ctx.Message.Content, ctx.Prefix))
	if len(words) == 0 {
		return false
	}
	alias := database.FetchCommandAlias(strings.ToLower(words[0]))
	if alias == nil {
		return false
	}
	ctx.Reply("%s", alias.Value)
	return true
}
