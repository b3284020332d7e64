package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-gin-gorm-library/internal/bootstrap"
	"go-gin-gorm-library/internal/core/database"
	"go-gin-gorm-library/internal/repo"
)

func migrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := bootstrap.OpenDB(e.cfg, e.log)
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			driver := e.cfg.DB.Driver
			if args[0] == "up" {
				if err := database.Migrate(cmd.Context(), db, driver, repo.Models()...); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrate up: OK")
				return nil
			}
			// down/status 依赖版本化脚本，只有 postgres 有
			if driver != database.DriverPostgres {
				return fmt.Errorf("migrate %s is only supported on %s (driver is %s)", args[0], database.DriverPostgres, driver)
			}
			return database.Goose(cmd.Context(), db, args[0])
		},
	}
}
