package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/opstracker/backend/internal/infrastructure/config"
	"github.com/opstracker/backend/internal/infrastructure/logger"
	"github.com/opstracker/backend/internal/infrastructure/migration"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	pathFlag     = "path"
	logLevelFlag = "log-level"
)

// commonFlags are registered on every subcommand
var commonFlags = map[string]cobraflags.Flag{
	pathFlag: &cobraflags.StringFlag{
		Name:  pathFlag,
		Value: "",
		Usage: "Migrations directory; the migrations embedded in the binary are used when empty",
	},
	logLevelFlag: &cobraflags.StringFlag{
		Name:  logLevelFlag,
		Value: "info",
		Usage: "Log level (debug, info, warn, error)",
	},
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the opstracker database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		withMigrator("up", "Apply all pending migrations", cobra.NoArgs,
			func(m *migration.Migrator, _ []string) error { return m.Up() }),
		withMigrator("down", "Roll back every migration", cobra.NoArgs,
			func(m *migration.Migrator, _ []string) error { return m.Down() }),
		withMigrator("steps N", "Apply N migrations (negative rolls back)", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q: %w", args[0], err)
				}
				return m.Steps(n)
			}),
		withMigrator("force VERSION", "Set the schema version without running migrations", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return m.Force(v)
			}),
		withMigrator("version", "Print the applied schema version", cobra.NoArgs,
			func(m *migration.Migrator, _ []string) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Printf("version=%d dirty=%t\n", v, dirty)
				return nil
			}),
		newCreateCommand(),
		newListCommand(),
	)
	return root
}

// withMigrator builds a subcommand that needs a database connection
func withMigrator(use, short string, args cobra.PositionalArgs, run func(*migration.Migrator, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(_ *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			var m *migration.Migrator
			if dir := commonFlags[pathFlag].GetString(); dir != "" {
				m, err = migration.NewFromDir(cfg.Database.DSN(), dir, log)
			} else {
				m, err = migration.NewEmbedded(cfg.Database.DSN(), log)
			}
			if err != nil {
				return err
			}
			defer func() {
				if cerr := m.Close(); cerr != nil {
					log.Warn("Failed to close migrator", zap.Error(cerr))
				}
			}()

			return run(m, args)
		},
	}
	cobraflags.RegisterMap(cmd, commonFlags)
	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create NAME [DESCRIPTION]",
		Short: "Create an empty up/down migration pair",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			description := ""
			if len(args) > 1 {
				description = args[1]
			}
			mf, err := migration.CreateMigration(migrationsDir(), args[0], description)
			if err != nil {
				return err
			}
			fmt.Printf("created %s\ncreated %s\n", mf.UpPath, mf.DownPath)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, commonFlags)
	return cmd
}

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List migration files",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			names, err := migration.ListMigrations(migrationsDir())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, commonFlags)
	return cmd
}

func migrationsDir() string {
	if dir := commonFlags[pathFlag].GetString(); dir != "" {
		return dir
	}
	return "migrations"
}

func newLogger() (*zap.Logger, error) {
	return logger.New(logger.Config{
		Level:  commonFlags[logLevelFlag].GetString(),
		Format: "console",
		Output: "stdout",
	})
}
