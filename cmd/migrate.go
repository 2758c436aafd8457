/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cardlab/cardlab/internal/iodb"
	"github.com/cardlab/cardlab/internal/ioschema"
	"github.com/cardlab/cardlab/pkg/lifecycle"
	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getMigrateCmd() *cobra.Command {
	var recreate, yes, vacuum bool

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or migrate the database schema",
		Long: `Migrate brings the database schema to the latest version.

This command:
  1. Connects to the configured database
  2. Runs GORM AutoMigrate for cards, passives, keyword abilities,
     their version ledgers, registries and locations
  3. Preserves existing data (non-destructive)

GORM AutoMigrate adds missing tables, columns and indexes. It
does NOT delete columns or tables.

Use --recreate to drop all cardlab tables and start from an empty
schema. It asks for confirmation unless --yes is given.

Use --vacuum after large deletes to reclaim space and refresh the
query planner statistics.

Examples:
  cardlab migrate
  cardlab migrate --vacuum
  cardlab migrate --recreate
  cardlab migrate -r -y`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMigrate(recreate, yes, vacuum)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	migrateCmd.Flags().BoolVarP(&recreate, "recreate", "r",
		false, "drop all cardlab tables and create them again")
	migrateCmd.Flags().BoolVarP(&yes, "yes", "y",
		false, "do not ask for confirmation")
	migrateCmd.Flags().BoolVarP(&vacuum, "vacuum", "v",
		false, "reclaim space and update statistics after migration")

	return migrateCmd
}

func runMigrate(recreate, yes, vacuum bool) error {
	ctx := context.Background()

	op := iodb.NewOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return err
	}
	defer op.Close()

	sm := ioschema.NewManager(op)
	tables := humanize.Comma(int64(len(schema.AllModels())))

	if !recreate {
		gn.Info("Migrating schema to latest version...")
		if err := sm.Migrate(ctx); err != nil {
			return err
		}
		gn.Info("Schema is now up to date (%s tables).", tables)
		return runVacuum(ctx, sm, vacuum)
	}

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if hasTables && !yes && !confirm() {
		gn.Info("Aborted. No changes made.")
		return nil
	}

	if err = sm.Create(ctx, true); err != nil {
		return err
	}
	gn.Info("Created empty schema (%s tables).", tables)
	return nil
}

func runVacuum(ctx context.Context, sm lifecycle.SchemaManager, vacuum bool) error {
	if !vacuum {
		return nil
	}
	gn.Info("Running vacuum...")
	if err := sm.Vacuum(ctx); err != nil {
		return err
	}
	gn.Info("Vacuum completed.")
	return nil
}

func confirm() bool {
	gn.Warn("Database already contains cardlab tables.")
	gn.Warn("Recreating the schema deletes ALL cards and their history.")
	fmt.Print("\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
