package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"SubBot/cogs"
	"SubBot/core"
	"SubBot/core/command"
	"SubBot/core/database"
	"SubBot/core/subcommands"

	"github.com/bwmarrin/discordgo"
)

// Variables used for command line parameters
var (
	settingsFile string
)

func init() {
	flag.StringVar(&settingsFile, "c", "config-dev.json", "Configuration path")
	flag.Parse()
}

func main() {
	core.LoadSettings(settingsFile)
	database.InitializeDatabase()
	defer database.Close()

	// Create a new Discord session using the provided bot token.
	dg, err := discordgo.New("Bot " + core.Settings.AuthToken())
	if err != nil {
		core.LogFatal("error creating Discord session,", err)
		return
	}

	bot := command.NewBot(dg, core.Settings.CommandPrefix())
	manager, err := subcommands.New(bot, subcommands.Options{
		CopyGroupErrorHandler: core.Settings.CopyGroupErrorHandler(),
		StrictGroupKinds:      core.Settings.StrictGroupKinds(),
	})
	if err != nil {
		core.LogFatal("error installing subcommands manager,", err)
		return
	}

	// Cogs that declare subcommands load before the cogs that declare their
	// groups on purpose; the load order does not matter.
	allCogs := []*command.Cog{
		cogs.UtilitiesCog(),
		cogs.UserInfoCog(),
		cogs.ServerCommandsCog(),
		cogs.ServerSettingsCog(),
		cogs.HybridUtilityCog(),
		cogs.HybridChannelCog(),
		cogs.PingCog(),
		cogs.CustomCog(),
		cogs.GroupsCog(),
		cogs.SlashGroupsCog(),
		cogs.HybridGroupsCog(),
	}
	for _, cog := range allCogs {
		if err := bot.AddCog(cog); err != nil {
			core.LogFatal("Failed to load cog ", cog.Name, ": ", err)
		}
		core.LogInfoF("Successfully loaded cog %s", cog.Name)
	}

	// Any subcommand that never found its group is a startup failure.
	if err := manager.ReportUnresolved(); err != nil {
		core.LogFatal("Unresolved subcommands:\n", err)
	}

	bot.Fallback = cogs.CustomFallback

	// Register handlers
	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		go bot.Dispatch(s, m.Message)
	})
	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageUpdate) {
		go bot.Dispatch(s, m.Message)
	})
	dg.AddHandler(bot.HandleInteraction)

	// Open a websocket connection to Discord and begin listening.
	err = dg.Open()
	if err != nil {
		core.LogFatal("error opening connection,", err)
		return
	}
	defer dg.Close()

	// Sync slash commands after connection is open
	if err := bot.RegisterApplicationCommands(core.Settings.GuildId()); err != nil {
		core.LogError("Failed to register application commands: ", err)
	}

	// Wait here until CTRL-C or other term signal is received.
	core.LogInfoF("Bot is now running.  Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt, os.Kill)
	<-sc
}
