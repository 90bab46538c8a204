package command

// Cog is a named bundle of top-level command declarations, loaded and
// unloaded as a unit. Commands annotated with Subcommand() are still listed
// here at their declaration site; they are re-homed after load.
type Cog struct {
	Name     string
	Commands []*Command
}

// Walk calls fn for every command the cog declared, including nested
// subcommands of groups declared in the same cog.
func (c *Cog) Walk(fn func(*Command)) {
	for _, cmd := range c.Commands {
		cmd.Walk(fn)
	}
}
