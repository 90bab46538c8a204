package database

import (
	"sync"

	"SubBot/core"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var schema = `
CREATE TABLE IF NOT EXISTS commandalias ( id INTEGER PRIMARY KEY AUTOINCREMENT , group_id INTEGER, command VARCHAR, help VARCHAR, value VARCHAR );
CREATE INDEX IF NOT EXISTS commandalias_command_index ON commandalias (command);
CREATE INDEX IF NOT EXISTS commandalias_group_index ON commandalias (group_id);

CREATE TABLE IF NOT EXISTS commandgroup ( id INTEGER PRIMARY KEY AUTOINCREMENT , parent INTEGER, command VARCHAR, help VARCHAR );
CREATE INDEX IF NOT EXISTS commandgroup_command_index ON commandgroup (command);
CREATE INDEX IF NOT EXISTS commandgroup_parent_index ON commandgroup (parent);
`

// CommandAlias is a user-defined reply command, optionally in a category.
type CommandAlias struct {
	Id             int
	GroupId        *int `db:"group_id"`
	Command, Value string
	Help           *string
}

// CommandGroup is a category custom commands can be filed under.
type CommandGroup struct {
	Id      int
	Parent  *int
	Command string
	Help    *string
}

var database *sqlx.DB
var mu sync.RWMutex

func InitializeDatabase() {
	db, err := sqlx.Connect("sqlite3", core.Settings.Database())
	if err != nil {
		core.LogFatal("Failed to open database: ", err)
	}

	// exec the schema or fail; multi-statement Exec behavior varies between
	// database drivers;  pq will exec them all, sqlite3 won't, ymmv
	db.MustExec(schema)
	database = db
}

func Close() {
	database.Close()
}

func FetchCommandAlias(cmd string) *CommandAlias {
	mu.RLock()
	defer mu.RUnlock()
	if database == nil {
		core.LogError("Database isn't open. Shouldn't happen.")
		return nil
	}
	command := CommandAlias{}
	err := database.Get(&command, "SELECT * FROM commandalias WHERE command=$1", cmd)
	if err != nil {
		core.LogDebugF("No custom command %s: %s", cmd, err)
		return nil
	}
	return &command
}

func AddCommandAlias(cmd, value string) bool {
	mu.Lock()
	defer mu.Unlock()
	_, err := database.Exec("INSERT INTO commandalias (command, value) VALUES ($1, $2)", cmd, value)
	if err != nil {
		core.LogErrorF("Failed to add custom command %s: %s", cmd, err)
		return false
	}
	return true
}

func RemoveCommandAlias(cmd string) bool {
	mu.Lock()
	defer mu.Unlock()
	res, err := database.Exec("DELETE FROM commandalias WHERE command=$1", cmd)
	if err != nil {
		core.LogErrorF("Failed to remove custom command %s: %s", cmd, err)
		return false
	}
	count, _ := res.RowsAffected()
	return count > 0
}

func FetchCommandGroup(cmd string) *CommandGroup {
	mu.RLock()
	defer mu.RUnlock()
	group := CommandGroup{}
	err := database.Get(&group, "SELECT * FROM commandgroup WHERE command=$1", cmd)
	if err != nil {
		return nil
	}
	return &group
}

func FetchCommandGroups() []CommandGroup {
	mu.RLock()
	defer mu.RUnlock()

	var groups []CommandGroup
	err := database.Select(&groups, "SELECT * FROM commandgroup ORDER BY command ASC")
	if err != nil {
		core.LogErrorF("Failed to fetch command groups: %s", err)
		return nil
	}
	return groups
}

func AddCommandGroup(name string) bool {
	mu.Lock()
	defer mu.Unlock()
	_, err := database.Exec("INSERT INTO commandgroup (command) VALUES ($1)", name)
	if err != nil {
		core.LogErrorF("Failed to add category %s: %s", name, err)
		return false
	}
	return true
}

func (c *CommandGroup) FetchCommands() []CommandAlias {
	mu.RLock()
	defer mu.RUnlock()

	var commands []CommandAlias
	err := database.Select(&commands, "SELECT * FROM commandalias WHERE group_id=$1 ORDER BY command ASC", c.Id)
	if err != nil {
		core.LogErrorF("Failed to fetch commands for category %s: %s", c.Command, err)
		return nil
	}
	return commands
}

// AddCommand files an existing alias under the category.
func (c *CommandGroup) AddCommand(cmd string) bool {
	mu.Lock()
	defer mu.Unlock()
	res, err := database.Exec("UPDATE commandalias SET group_id=$1 WHERE command=$2", c.Id, cmd)
	if err != nil {
		core.LogErrorF("Failed to add %s to category %s: %s", cmd, c.Command, err)
		return false
	}
	count, _ := res.RowsAffected()
	return count > 0
}

func FetchStandaloneCommands() []CommandAlias {
	mu.RLock()
	defer mu.RUnlock()

	var commands []CommandAlias
	err := database.Select(&commands, "SELECT * FROM commandalias WHERE group_id IS NULL ORDER BY command ASC")
	if err != nil {
		core.LogErrorF("Failed to fetch standalone commands: %s", err)
		return nil
	}
	return commands
}
