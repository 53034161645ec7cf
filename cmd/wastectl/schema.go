package main

import (
	"fmt"

	"github.com/localnerve/wastedash/internal/config"
	"github.com/localnerve/wastedash/internal/database"
	"github.com/spf13/cobra"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the tables AutoMigrate creates, as SQLite DDL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{DBType: "sqlite-nocgo", DBDatabase: ":memory:", DBAppConnectionLimit: 1, DBLogLevel: "silent"}
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			// Auto-migrate to see what GORM creates
			if err := database.AutoMigrate(db); err != nil {
				return err
			}

			var rows []struct {
				Name string
				SQL  string `gorm:"column:sql"`
			}
			if err := db.Raw("SELECT name, sql FROM sqlite_master WHERE type IN ('table', 'index') AND sql IS NOT NULL ORDER BY type DESC, name").
				Scan(&rows).Error; err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range rows {
				fmt.Fprintf(out, "\n=== %s ===\n%s;\n", r.Name, r.SQL)
			}
			return nil
		},
	}
}
