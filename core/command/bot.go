package command

import (
	"fmt"
	"strings"

	"SubBot/core"

	"github.com/bwmarrin/discordgo"
)

// Bot owns the live command trees for both universes and the cog lifecycle.
//
// AddCog and RemoveCog are function fields rather than methods so an
// extension can interpose on the lifecycle: swap in a wrapper that calls the
// saved original, and restore it on teardown. The subcommands manager relies
// on exactly this.
type Bot struct {
	Session *discordgo.Session

	// Fallback is consulted for prefixed messages that match no registered
	// command (e.g. database-backed custom commands). Return true if handled.
	Fallback func(ctx *Context) bool

	AddCog    func(cog *Cog) error
	RemoveCog func(name string) *Cog

	prefix string
	cogs   map[string]*Cog
	text   map[string]*Command
	app    map[string]*Command
}

func NewBot(session *discordgo.Session, prefix string) *Bot {
	b := &Bot{
		Session: session,
		prefix:  prefix,
		cogs:    map[string]*Cog{},
		text:    map[string]*Command{},
		app:     map[string]*Command{},
	}
	b.AddCog = b.addCog
	b.RemoveCog = b.removeCog
	return b
}

// Prefix returns the text command prefix.
func (b *Bot) Prefix() string {
	return b.prefix
}

// Cog returns the loaded cog with the given name, or nil.
func (b *Bot) Cog(name string) *Cog {
	return b.cogs[name]
}

// Lookup returns the top-level command with the given name in a universe.
func (b *Bot) Lookup(u Universe, name string) *Command {
	return b.universe(u)[strings.ToLower(name)]
}

// Commands returns all top-level commands of a universe.
func (b *Bot) Commands(u Universe) []*Command {
	reg := b.universe(u)
	list := make([]*Command, 0, len(reg))
	for _, c := range reg {
		list = append(list, c)
	}
	return list
}

// Groups returns every group in a universe, including groups nested below
// other groups.
func (b *Bot) Groups(u Universe) []*Command {
	var groups []*Command
	for _, c := range b.universe(u) {
		c.Walk(func(cmd *Command) {
			if cmd.IsGroup() {
				groups = append(groups, cmd)
			}
		})
	}
	return groups
}

// RemoveCommand drops a command from its universe's top level without
// touching its subtree. Used when a command is re-homed under a group.
func (b *Bot) RemoveCommand(c *Command) {
	delete(b.universe(c.Kind.Universe()), strings.ToLower(c.Name))
}

func (b *Bot) universe(u Universe) map[string]*Command {
	if u == AppUniverse {
		return b.app
	}
	return b.text
}

// addCog is the default AddCog entry point: register every top-level command
// the cog declares into its universe.
func (b *Bot) addCog(cog *Cog) error {
	if _, loaded := b.cogs[cog.Name]; loaded {
		return fmt.Errorf("cog %q is already loaded", cog.Name)
	}
	for _, c := range cog.Commands {
		if c.Parent() != nil {
			return fmt.Errorf("cog %q declares %q below group %q; list only top-level commands", cog.Name, c.Name, c.Parent().QualifiedName())
		}
		key := strings.ToLower(c.Name)
		if _, taken := b.universe(c.Kind.Universe())[key]; taken {
			return fmt.Errorf("cog %q redeclares command %q", cog.Name, c.Name)
		}
	}
	for _, c := range cog.Commands {
		b.universe(c.Kind.Universe())[strings.ToLower(c.Name)] = c
		if core.IsLogInfo() {
			core.LogInfoF("Registered %s: %s (cog %s)", c.Kind, c.Name, cog.Name)
		}
	}
	b.cogs[cog.Name] = cog
	return nil
}

// removeCog is the default RemoveCog entry point: drop the cog's commands
// that are still at the top level. Commands re-homed under groups belonging
// to other cogs are not touched here; whoever re-homed them detaches them.
func (b *Bot) removeCog(name string) *Cog {
	cog := b.cogs[name]
	if cog == nil {
		return nil
	}
	for _, c := range cog.Commands {
		if c.Parent() == nil {
			b.RemoveCommand(c)
		}
	}
	delete(b.cogs, name)
	core.LogDebugF("Unloaded cog %s", name)
	return cog
}
