package cmd

import (
	"fmt"
	"strconv"

	"tourney/database"

	log "github.com/sirupsen/logrus"
)

const migrateUsage = `usage: tourney migrate <command>

commands:
  up            apply every pending migration
  down [steps]  roll back the given number of migrations (default 1)
  status        show the applied version against the embedded migrations`

// migrateCommand is a parsed `tourney migrate` invocation
type migrateCommand struct {
	action string
	steps  int
}

func parseMigrateArgs(args []string) (migrateCommand, error) {
	if len(args) == 0 {
		return migrateCommand{}, fmt.Errorf("missing migration command\n%s", migrateUsage)
	}

	cmd := migrateCommand{action: args[0]}
	switch cmd.action {
	case "up", "status":
		if len(args) > 1 {
			return migrateCommand{}, fmt.Errorf("%s takes no arguments\n%s", cmd.action, migrateUsage)
		}
	case "down":
		cmd.steps = 1
		if len(args) > 2 {
			return migrateCommand{}, fmt.Errorf("down takes at most one argument\n%s", migrateUsage)
		}
		if len(args) == 2 {
			steps, err := strconv.Atoi(args[1])
			if err != nil || steps <= 0 {
				return migrateCommand{}, fmt.Errorf("steps must be a positive integer, got %q", args[1])
			}
			cmd.steps = steps
		}
	default:
		return migrateCommand{}, fmt.Errorf("unknown migration command: %s\n%s", cmd.action, migrateUsage)
	}

	return cmd, nil
}

// Migrate runs a `tourney migrate` subcommand against DATABASE_URL
func Migrate(args []string) error {
	cmd, err := parseMigrateArgs(args)
	if err != nil {
		return err
	}

	switch cmd.action {
	case "up":
		return database.MigrateUp()
	case "down":
		return database.MigrateDown(cmd.steps)
	default:
		status, err := database.MigrateStatus()
		if err != nil {
			return err
		}
		logMigrationStatus(status)
		return nil
	}
}

func logMigrationStatus(status *database.MigrationStatus) {
	fields := log.Fields{
		"embedded": len(status.Embedded),
		"latest":   status.Latest(),
		"pending":  status.Pending(),
	}

	if !status.Applied {
		log.WithFields(fields).Info("No migrations have been applied yet")
		return
	}

	fields["version"] = status.Version
	fields["dirty"] = status.Dirty

	switch {
	case status.Dirty:
		log.WithFields(fields).Warn("Schema is dirty, a migration failed part way")
	case status.Version > status.Latest():
		log.WithFields(fields).Warn("Database schema is newer than this binary")
	default:
		log.WithFields(fields).Info("Current migration version")
	}
}
