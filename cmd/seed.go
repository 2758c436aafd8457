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
	"context"

	"github.com/cardlab/cardlab/internal/ioevents"
	"github.com/cardlab/cardlab/internal/ioimport"
	"github.com/cardlab/cardlab/internal/iolab"
	"github.com/cardlab/cardlab/internal/iostore"
	"github.com/cardlab/cardlab/pkg/lifecycle"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var noProgress bool

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import cards and registries from a YAML seed file",
		Long: `Import loads a YAML seed file into the card lab.

Registries (pantheons, archetypes, tags, ability timings), keyword
abilities and passives are matched by name and created only when
missing. Cards are always added as new cards with a first version,
so importing the same file twice duplicates its cards.

Passives and keyword abilities on cards are linked to the shared
entries by name, and the shared text replaces the text in the file.

Examples:
  cardlab import seed.yaml
  cardlab import --no-progress seed.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSeeder(func(s lifecycle.Seeder) error {
				return s.Import(cmd.Context(), args[0])
			}, !noProgress)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().BoolVar(&noProgress, "no-progress",
		false, "do not show the progress bar")

	return importCmd
}

// getExportCmd returns the export command.
func getExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export the card lab to a YAML seed file",
		Long: `Export writes the current state of all cards, shared entities,
registries and locations to a YAML seed file. Version history is not
exported. The file can be loaded with 'cardlab import'.

Examples:
  cardlab export backup.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSeeder(func(s lifecycle.Seeder) error {
				return s.Export(cmd.Context(), args[0])
			}, false)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return exportCmd
}

func runSeeder(fn func(lifecycle.Seeder) error, progress bool) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	pub, err := ioevents.New(ctx, cfg.Events)
	if err != nil {
		return err
	}
	defer pub.Close()

	lab := iolab.New(iostore.New(op), pub, cfg.JobsNumber)
	return fn(ioimport.New(lab, cfg.JobsNumber, progress))
}
