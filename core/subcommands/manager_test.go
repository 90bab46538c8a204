package subcommands

import (
	"strings"
	"testing"

	"SubBot/core/command"
)

func newBot() *command.Bot {
	return command.NewBot(nil, "!")
}

func userGroupCog() *command.Cog {
	user := command.NewGroup("user", "User related commands.", command.Prefix)
	user.OnError = func(ctx *command.Context, err error) {}
	return &command.Cog{Name: "Groups", Commands: []*command.Command{user}}
}

func userInfoCog() *command.Cog {
	info := command.Subcommand("user", &command.Command{Name: "info", Kind: command.Prefix})
	return &command.Cog{Name: "UserInfo", Commands: []*command.Command{info}}
}

func mustAddCog(t *testing.T, bot *command.Bot, cog *command.Cog) {
	t.Helper()
	if err := bot.AddCog(cog); err != nil {
		t.Fatalf("Failed to load cog %s: %v", cog.Name, err)
	}
}

func assertAttached(t *testing.T, bot *command.Bot, cmd *command.Command, qualified string) {
	t.Helper()
	if cmd.Parent() == nil {
		t.Fatalf("Expected %s attached, has no parent", cmd.Name)
	}
	if got := cmd.QualifiedName(); got != qualified {
		t.Errorf("Expected qualified name '%s', got '%s'", qualified, got)
	}
	if bot.Lookup(cmd.Kind.Universe(), cmd.Name) != nil {
		t.Errorf("Expected %s gone from the top level after attach", cmd.Name)
	}
}

func TestSubcommandBeforeGroup(t *testing.T) {
	bot := newBot()
	m, err := New(bot, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	infoCog := userInfoCog()
	mustAddCog(t, bot, infoCog)
	info := infoCog.Commands[0]
	if info.Parent() != nil {
		t.Fatal("Expected info pending before its group loads")
	}

	mustAddCog(t, bot, userGroupCog())
	assertAttached(t, bot, info, "user info")

	if err := m.ReportUnresolved(); err != nil {
		t.Errorf("Expected nothing unresolved, got: %v", err)
	}
}

func TestGroupBeforeSubcommand(t *testing.T) {
	bot := newBot()
	m, err := New(bot, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	mustAddCog(t, bot, userGroupCog())
	infoCog := userInfoCog()
	mustAddCog(t, bot, infoCog)

	assertAttached(t, bot, infoCog.Commands[0], "user info")
	if err := m.ReportUnresolved(); err != nil {
		t.Errorf("Expected nothing unresolved, got: %v", err)
	}
}

func TestResolvePassIdempotent(t *testing.T) {
	bot := newBot()
	m, _ := New(bot, Options{})

	groupCog := userGroupCog()
	infoCog := userInfoCog()
	mustAddCog(t, bot, infoCog)
	mustAddCog(t, bot, groupCog)

	user := groupCog.Commands[0]
	if len(user.Subcommands()) != 1 {
		t.Fatalf("Expected 1 subcommand, got %d", len(user.Subcommands()))
	}

	// Re-running the pass with no new state must change nothing.
	if err := m.resolve(); err != nil {
		t.Errorf("Expected no-op pass, got: %v", err)
	}
	if len(user.Subcommands()) != 1 {
		t.Errorf("Expected still 1 subcommand, got %d", len(user.Subcommands()))
	}
	if infoCog.Commands[0].Parent() != user {
		t.Error("Expected info still attached to user")
	}
	if len(m.unresolved) != 0 {
		t.Errorf("Expected no unresolved declarations, got %v", m.unresolved)
	}
}

func TestNestedGroupResolvesInOnePass(t *testing.T) {
	bot := newBot()
	m, _ := New(bot, Options{})

	// whenjoin targets "user utils", which only exists once utils itself
	// attaches to user. Both wait for the same load.
	whenjoin := command.Subcommand("user utils", &command.Command{Name: "whenjoin", Kind: command.Prefix})
	mustAddCog(t, bot, &command.Cog{Name: "Utilities", Commands: []*command.Command{whenjoin}})

	utils := command.Subcommand("user", command.NewGroup("utils", "", command.Prefix))
	mustAddCog(t, bot, &command.Cog{Name: "UserInfo", Commands: []*command.Command{utils}})

	mustAddCog(t, bot, userGroupCog())

	assertAttached(t, bot, utils, "user utils")
	assertAttached(t, bot, whenjoin, "user utils whenjoin")
	if err := m.ReportUnresolved(); err != nil {
		t.Errorf("Expected nothing unresolved, got: %v", err)
	}
}

func TestRemoveCogDetaches(t *testing.T) {
	bot := newBot()
	m, _ := New(bot, Options{})

	groupCog := userGroupCog()
	infoCog := userInfoCog()
	mustAddCog(t, bot, groupCog)
	mustAddCog(t, bot, infoCog)

	info := infoCog.Commands[0]
	user := groupCog.Commands[0]
	assertAttached(t, bot, info, "user info")

	if bot.RemoveCog("UserInfo") != infoCog {
		t.Fatal("Expected RemoveCog to return the cog")
	}
	if info.Parent() != nil {
		t.Error("Expected info detached after its cog unloads")
	}
	if user.Subcommand("info") != nil {
		t.Error("Expected user group empty after unload")
	}
	if len(m.known) != 0 || len(m.unresolved) != 0 {
		t.Errorf("Expected registry buckets dropped, got known=%v unresolved=%v", m.known, m.unresolved)
	}
}

func TestReportUnresolvedNamesDeclaration(t *testing.T) {
	bot := newBot()
	m, _ := New(bot, Options{})

	mustAddCog(t, bot, userInfoCog())

	err := m.ReportUnresolved()
	if err == nil {
		t.Fatal("Expected an error for the unresolved declaration")
	}
	msg := err.Error()
	for _, want := range []string{"UserInfo", `"info"`, `"user"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected report to mention %s, got: %s", want, msg)
		}
	}
}

func TestReportSuggestsClosestGroup(t *testing.T) {
	bot := newBot()
	m, _ := New(bot, Options{})

	mustAddCog(t, bot, userGroupCog())
	whenjoin := command.Subcommand("user utils", &command.Command{Name: "whenjoin", Kind: command.Prefix})
	mustAddCog(t, bot, &command.Cog{Name: "Utilities", Commands: []*command.Command{whenjoin}})

	err := m.ReportUnresolved()
	if err == nil {
		t.Fatal("Expected an error for the unresolved declaration")
	}
	if !strings.Contains(err.Error(), `did you mean "user"?`) {
		t.Errorf("Expected a 'did you mean' suggestion for 'user', got: %s", err.Error())
	}
}

func TestManagerRemoveRestores(t *testing.T) {
	bot := newBot()
	m, _ := New(bot, Options{})

	groupCog := userGroupCog()
	infoCog := userInfoCog()
	mustAddCog(t, bot, groupCog)
	mustAddCog(t, bot, infoCog)
	assertAttached(t, bot, infoCog.Commands[0], "user info")

	m.Remove()

	if infoCog.Commands[0].Parent() != nil {
		t.Error("Expected info detached on teardown")
	}
	if len(m.known) != 0 || len(m.unresolved) != 0 {
		t.Error("Expected registry cleared on teardown")
	}

	// Cog loads now behave as if the manager was never installed: an
	// annotated command just stays at the top level.
	late := command.Subcommand("user", &command.Command{Name: "late", Kind: command.Prefix})
	mustAddCog(t, bot, &command.Cog{Name: "Late", Commands: []*command.Command{late}})
	if late.Parent() != nil {
		t.Error("Expected no attachment after teardown")
	}
	if bot.Lookup(command.TextUniverse, "late") != late {
		t.Error("Expected late command registered at the top level")
	}
	if len(m.known) != 0 {
		t.Error("Expected no bookkeeping after teardown")
	}
}

func TestCopyGroupErrorHandler(t *testing.T) {
	bot := newBot()
	New(bot, Options{CopyGroupErrorHandler: true})

	infoCog := userInfoCog()
	mustAddCog(t, bot, infoCog)
	mustAddCog(t, bot, userGroupCog())

	if infoCog.Commands[0].OnError == nil {
		t.Error("Expected the group's error handler copied onto the subcommand")
	}

	// Slash subcommands do not get the copy; the dispatch error chain
	// already reaches the group handler.
	server := command.NewGroup("server", "", command.Slash)
	server.OnError = func(ctx *command.Context, err error) {}
	mustAddCog(t, bot, &command.Cog{Name: "SlashGroups", Commands: []*command.Command{server}})
	banner := command.Subcommand("server", &command.Command{Name: "banner", Kind: command.Slash})
	mustAddCog(t, bot, &command.Cog{Name: "ServerCommands", Commands: []*command.Command{banner}})

	if banner.Parent() == nil {
		t.Fatal("Expected banner attached")
	}
	if banner.OnError != nil {
		t.Error("Expected no handler copy for slash subcommands")
	}
}

func TestStrictGroupKinds(t *testing.T) {
	bot := newBot()
	m, _ := New(bot, Options{StrictGroupKinds: true})

	mustAddCog(t, bot, userGroupCog())

	// A slash command targeting the prefix group's name never matches in
	// strict mode; it stays pending instead of failing the attach.
	widget := command.Subcommand("user", &command.Command{Name: "widget", Kind: command.Slash})
	if err := bot.AddCog(&command.Cog{Name: "Widgets", Commands: []*command.Command{widget}}); err != nil {
		t.Fatalf("Expected no attach attempt in strict mode, got: %v", err)
	}
	if widget.Parent() != nil {
		t.Error("Expected widget unattached in strict mode")
	}
	if err := m.ReportUnresolved(); err == nil {
		t.Error("Expected widget reported unresolved")
	}
}

func TestKindMismatchFailsAttach(t *testing.T) {
	bot := newBot()
	New(bot, Options{})

	mustAddCog(t, bot, userGroupCog())

	// Permissive matching finds the prefix group, but a slash command
	// cannot live under it.
	widget := command.Subcommand("user", &command.Command{Name: "widget", Kind: command.Slash})
	err := bot.AddCog(&command.Cog{Name: "Widgets", Commands: []*command.Command{widget}})
	if err == nil {
		t.Fatal("Expected the incompatible attach to fail")
	}
	if !strings.Contains(err.Error(), "cannot add") {
		t.Errorf("Expected a kind mismatch error, got: %v", err)
	}
	if widget.Parent() != nil {
		t.Error("Expected widget left unattached after the failed attach")
	}
}

func TestHybridAttachesToPrefixGroup(t *testing.T) {
	bot := newBot()
	New(bot, Options{})

	mustAddCog(t, bot, userGroupCog())
	topic := command.Subcommand("user", &command.Command{Name: "topic", Kind: command.Hybrid})
	mustAddCog(t, bot, &command.Cog{Name: "Hybrids", Commands: []*command.Command{topic}})

	assertAttached(t, bot, topic, "user topic")
}

func TestConflictIsolation(t *testing.T) {
	bot := newBot()
	m, _ := New(bot, Options{})

	mustAddCog(t, bot, userGroupCog())

	// One bad declaration must not block its sibling in the same pass.
	widget := command.Subcommand("user", &command.Command{Name: "widget", Kind: command.Slash})
	info := command.Subcommand("user", &command.Command{Name: "info", Kind: command.Prefix})
	err := bot.AddCog(&command.Cog{Name: "Mixed", Commands: []*command.Command{widget, info}})
	if err == nil {
		t.Fatal("Expected the bad declaration's error to surface")
	}
	assertAttached(t, bot, info, "user info")
	if widget.Parent() != nil {
		t.Error("Expected widget unattached")
	}
	if err := m.ReportUnresolved(); err == nil {
		t.Error("Expected widget still reported unresolved")
	}
}

func TestNewRequiresBot(t *testing.T) {
	if _, err := New(nil, Options{}); err == nil {
		t.Error("Expected an error for a nil bot")
	}
}
