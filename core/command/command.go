// Package command is the command model the bot dispatches against: leaf
// commands and groups in three kinds (prefix, hybrid, slash), organized as
// trees that cogs contribute to and the dispatcher walks.
package command

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Kind says how a command is invoked.
type Kind int

const (
	// Prefix commands only respond to text messages starting with the bot prefix.
	Prefix Kind = iota
	// Hybrid commands respond to both prefixed text messages and slash invocations.
	Hybrid
	// Slash commands only exist as Discord application commands.
	Slash
)

func (k Kind) String() string {
	switch k {
	case Prefix:
		return "prefix command"
	case Hybrid:
		return "hybrid command"
	case Slash:
		return "slash command"
	}
	return "unknown"
}

// Universe is the top-level registry a command lives in. Prefix and hybrid
// commands share the text universe; slash commands live in the app universe.
type Universe int

const (
	TextUniverse Universe = iota
	AppUniverse
)

// Universe returns the universe commands of this kind are registered in.
func (k Kind) Universe() Universe {
	if k == Slash {
		return AppUniverse
	}
	return TextUniverse
}

// groupAccepts is the compatibility table: which member kinds a group of a
// given kind may hold. Hybrid members are valid in plain prefix groups, the
// reverse is not true.
var groupAccepts = map[Kind]map[Kind]bool{
	Prefix: {Prefix: true, Hybrid: true},
	Hybrid: {Hybrid: true},
	Slash:  {Slash: true},
}

// HandlerFunc runs a command. The same handler serves text and slash
// invocations; Context says which one this is.
type HandlerFunc func(ctx *Context) error

// ErrorHandler receives errors returned by a command's handler (or, for
// groups, by any subcommand without its own handler).
type ErrorHandler func(ctx *Context, err error)

// Command is a single invocable unit or a group of them.
type Command struct {
	Name        string
	Description string
	Kind        Kind
	// Options describes slash arguments for leaf slash/hybrid commands.
	// Ignored for groups; their options are built from the subcommands.
	Options []*discordgo.ApplicationCommandOption
	Run     HandlerFunc
	OnError ErrorHandler

	group       bool
	parent      *Command
	subcommands []*Command
	targetGroup string
}

// NewGroup returns an empty group of the given kind.
func NewGroup(name, description string, kind Kind) *Command {
	return &Command{Name: name, Description: description, Kind: kind, group: true}
}

// IsGroup reports whether the command can hold subcommands.
func (c *Command) IsGroup() bool {
	return c.group
}

// Parent returns the group this command is attached to, or nil.
func (c *Command) Parent() *Command {
	return c.parent
}

// QualifiedName is the full space-separated path, e.g. "user utils whenjoin".
func (c *Command) QualifiedName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.QualifiedName() + " " + c.Name
}

// Subcommands returns the direct members of a group in attach order.
func (c *Command) Subcommands() []*Command {
	return c.subcommands
}

// Subcommand returns the direct member with the given name, or nil.
func (c *Command) Subcommand(name string) *Command {
	for _, sub := range c.subcommands {
		if strings.EqualFold(sub.Name, name) {
			return sub
		}
	}
	return nil
}

// Walk calls fn for the command and every command below it.
func (c *Command) Walk(fn func(*Command)) {
	fn(c)
	for _, sub := range c.subcommands {
		sub.Walk(fn)
	}
}

// AddSubcommand attaches sub as a member of the group. It fails if the
// receiver is not a group, the kinds are incompatible, sub already has a
// parent, or a member with the same name exists. Nothing is mutated on error.
func (c *Command) AddSubcommand(sub *Command) error {
	if !c.group {
		return fmt.Errorf("%s %q is not a group", c.Kind, c.QualifiedName())
	}
	if !groupAccepts[c.Kind][sub.Kind] {
		return fmt.Errorf("cannot add %s %q to %s group %q", sub.Kind, sub.Name, c.Kind, c.QualifiedName())
	}
	if sub.parent != nil {
		return fmt.Errorf("command %q is already a subcommand of group %q", sub.Name, sub.parent.QualifiedName())
	}
	if c.Subcommand(sub.Name) != nil {
		return fmt.Errorf("group %q already has a subcommand named %q", c.QualifiedName(), sub.Name)
	}
	sub.parent = c
	c.subcommands = append(c.subcommands, sub)
	return nil
}

// MustAddSubcommand is AddSubcommand for declaration sites, where a failure
// is a programming error.
func (c *Command) MustAddSubcommand(sub *Command) {
	if err := c.AddSubcommand(sub); err != nil {
		panic(err)
	}
}

// RemoveSubcommand detaches and returns the member with the given name, or
// nil when no such member exists.
func (c *Command) RemoveSubcommand(name string) *Command {
	for i, sub := range c.subcommands {
		if strings.EqualFold(sub.Name, name) {
			c.subcommands = append(c.subcommands[:i], c.subcommands[i+1:]...)
			sub.parent = nil
			return sub
		}
	}
	return nil
}

// TargetGroup returns the qualified group name the command was declared a
// subcommand of, or "" when it carries no such annotation.
func (c *Command) TargetGroup() string {
	return c.targetGroup
}

// Subcommand marks a command as belonging to a group that is declared
// elsewhere, by that group's qualified name. The actual attachment happens
// once both the command's cog and the group's cog are loaded; see the
// subcommands package. Returns c so declarations stay one expression.
//
// Misuse is a programming error and panics: empty group name, nil command,
// a command that is already annotated, or one that already has a parent.
func Subcommand(group string, c *Command) *Command {
	if c == nil {
		panic("command: Subcommand called with a nil command")
	}
	if strings.TrimSpace(group) == "" {
		panic(fmt.Sprintf("command: empty group name for %s %q", c.Kind, c.Name))
	}
	if c.targetGroup != "" {
		panic(fmt.Sprintf("command: %q is already declared a subcommand of group %q", c.Name, c.targetGroup))
	}
	if c.parent != nil {
		panic(fmt.Sprintf("command: %q is already a subcommand of group %q", c.Name, c.parent.QualifiedName()))
	}
	c.targetGroup = group
	return c
}
