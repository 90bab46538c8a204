// Package subcommands reconciles commands declared with a target group name
// (command.Subcommand) against groups declared in other cogs. A Manager
// interposes on the bot's cog lifecycle, keeps the declarations that have
// not found their group yet, and attaches them as soon as the group shows
// up, no matter which cog loads first.
package subcommands

import (
	"errors"
	"fmt"
	"sort"

	"SubBot/core"
	"SubBot/core/command"

	"github.com/thoas/go-funk"
	"github.com/xrash/smetrics"
	"go.uber.org/multierr"
)

// Options configures a Manager.
type Options struct {
	// CopyGroupErrorHandler copies the group's OnError onto prefix and
	// hybrid subcommands when they attach. Slash subcommands already reach
	// the group handler through the dispatch error chain.
	CopyGroupErrorHandler bool
	// StrictGroupKinds restricts group matching to the declaring command's
	// own universe. When false a declaration may match a group anywhere,
	// though incompatible matches still fail the attach.
	StrictGroupKinds bool
}

// pending is one declaration waiting for (or attached to) its group.
type pending struct {
	target  string
	command *command.Command
	group   *command.Command
}

// Manager tracks subcommand declarations per cog. Buckets in unresolved are
// always a subset of the same cog's bucket in known; a declaration leaves
// unresolved exactly when it attaches, and leaves known when its cog unloads.
type Manager struct {
	bot  *command.Bot
	opts Options

	origAddCog    func(*command.Cog) error
	origRemoveCog func(string) *command.Cog

	known      map[string]map[string]*pending
	unresolved map[string]map[string]*pending
}

// New installs a manager on the bot by wrapping its AddCog and RemoveCog
// entry points. Remove undoes the installation.
func New(bot *command.Bot, opts Options) (*Manager, error) {
	if bot == nil {
		return nil, errors.New("subcommands: bot must not be nil")
	}
	m := &Manager{
		bot:           bot,
		opts:          opts,
		origAddCog:    bot.AddCog,
		origRemoveCog: bot.RemoveCog,
		known:         map[string]map[string]*pending{},
		unresolved:    map[string]map[string]*pending{},
	}
	bot.AddCog = m.addCog
	bot.RemoveCog = m.removeCog
	core.LogDebugF("Subcommands manager installed (copyGroupErrorHandler=%v, strictGroupKinds=%v)",
		opts.CopyGroupErrorHandler, opts.StrictGroupKinds)
	return m, nil
}

// addCog wraps the bot's cog-add: load the cog first so its commands exist,
// then record its annotated declarations and run a resolution pass over
// every cog's pending declarations, not just this one's. A group loaded now
// may satisfy a declaration from a cog loaded earlier.
func (m *Manager) addCog(cog *command.Cog) error {
	if err := m.origAddCog(cog); err != nil {
		return err
	}

	funk.ForEach(cog.Commands, func(c *command.Command) {
		if c.TargetGroup() == "" {
			return
		}
		p := &pending{target: c.TargetGroup(), command: c}
		if m.known[cog.Name] == nil {
			m.known[cog.Name] = map[string]*pending{}
			m.unresolved[cog.Name] = map[string]*pending{}
		}
		m.known[cog.Name][c.Name] = p
		m.unresolved[cog.Name][c.Name] = p
	})

	return m.resolve()
}

// removeCog wraps the bot's cog-remove: unload first, then detach whatever
// this cog had attached and drop its buckets.
func (m *Manager) removeCog(name string) *command.Cog {
	cog := m.origRemoveCog(name)
	for _, p := range m.known[name] {
		m.detach(p)
	}
	delete(m.known, name)
	delete(m.unresolved, name)
	return cog
}

// resolve is the resolution pass. It sweeps all unresolved declarations and
// attaches those whose group now exists; since an attach can create a new
// qualified name (a subgroup finding its parent), it sweeps again until a
// full sweep makes no progress. Attach failures are isolated: the failing
// declaration stays unresolved and its siblings still get their chance.
// Re-running the pass with no new state is a no-op.
func (m *Manager) resolve() error {
	var errs error
	failed := map[*pending]bool{}
	for {
		progressed := false
		for cogName, bucket := range m.unresolved {
			for name, p := range bucket {
				if failed[p] {
					continue
				}
				group := m.findGroup(p)
				if group == nil {
					continue
				}
				if err := m.attach(p, group); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("cog %q: %w", cogName, err))
					failed[p] = true
					continue
				}
				core.LogDebugF("Attached %s %q to group %q", p.command.Kind, p.command.Name, group.QualifiedName())
				delete(bucket, name)
				progressed = true
			}
			if len(bucket) == 0 {
				delete(m.unresolved, cogName)
			}
		}
		if !progressed {
			return errs
		}
	}
}

// findGroup locates the group whose qualified name equals the declaration's
// target, or nil. Strict mode draws candidates only from the declaring
// command's universe.
func (m *Manager) findGroup(p *pending) *command.Command {
	for _, g := range m.candidates(p.command) {
		if g.QualifiedName() == p.target {
			return g
		}
	}
	return nil
}

func (m *Manager) candidates(c *command.Command) []*command.Command {
	if m.opts.StrictGroupKinds {
		return m.bot.Groups(c.Kind.Universe())
	}
	return append(m.bot.Groups(command.AppUniverse), m.bot.Groups(command.TextUniverse)...)
}

// attach re-homes the declaration's command under the group. AddSubcommand
// validates before mutating (group-ness, kind compatibility, double attach),
// so a failed attach leaves the command where it was.
func (m *Manager) attach(p *pending, group *command.Command) error {
	if err := group.AddSubcommand(p.command); err != nil {
		return err
	}
	m.bot.RemoveCommand(p.command)
	p.group = group
	if m.opts.CopyGroupErrorHandler && p.command.Kind != command.Slash && group.OnError != nil {
		p.command.OnError = group.OnError
	}
	return nil
}

// detach is the inverse of attach. Detaching a declaration that never
// attached is deliberately a no-op.
func (m *Manager) detach(p *pending) {
	if p.group == nil {
		return
	}
	p.group.RemoveSubcommand(p.command.Name)
	p.group = nil
}

// ReportUnresolved returns one aggregate error naming every declaration
// whose group was never found, with the closest existing group's qualified
// name as a suggestion. Nil when everything resolved. Meant to be called
// once after all cogs are loaded and treated as a startup failure.
func (m *Manager) ReportUnresolved() error {
	var errs error
	cogNames := funk.Keys(m.unresolved).([]string)
	sort.Strings(cogNames)
	for _, cogName := range cogNames {
		for _, p := range m.unresolved[cogName] {
			msg := fmt.Sprintf("group %q for %s %q in cog %q was not found",
				p.target, p.command.Kind, p.command.QualifiedName(), cogName)
			names := funk.Map(m.candidates(p.command), func(g *command.Command) string {
				return g.QualifiedName()
			}).([]string)
			if suggestion := closestMatch(p.target, names); suggestion != "" {
				msg += fmt.Sprintf(", did you mean %q?", suggestion)
			}
			errs = multierr.Append(errs, errors.New(msg))
		}
	}
	return errs
}

// Remove detaches every attached declaration, clears the registry, and
// restores the bot's original cog entry points. After Remove the bot behaves
// as if the manager was never installed.
func (m *Manager) Remove() {
	for _, bucket := range m.known {
		for _, p := range bucket {
			m.detach(p)
		}
	}
	m.known = map[string]map[string]*pending{}
	m.unresolved = map[string]map[string]*pending{}
	m.bot.AddCog = m.origAddCog
	m.bot.RemoveCog = m.origRemoveCog
	core.LogDebug("Subcommands manager removed")
}

// closestMatch returns the candidate most similar to target, best effort.
func closestMatch(target string, candidates []string) string {
	best, bestScore := "", -1.0
	for _, c := range candidates {
		if score := smetrics.JaroWinkler(target, c, 0.7, 4); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
