package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cardlab/cardlab/pkg/config"
	"github.com/cardlab/cardlab/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
pantheons:
  - name: Norse
passives:
  - group_name: Norse passive
    name: Rage
    text: Gain 1 fi
cards:
  - name: Hel
    type: God
    hp: 10
    pantheon: Norse
    passives:
      - group: Norse passive
        name: Rage
`

func TestGetImportExportCmd(t *testing.T) {
	for _, cmd := range []struct {
		use  string
		long string
	}{
		{getImportCmd().Use, getImportCmd().Long},
		{getExportCmd().Use, getExportCmd().Long},
	} {
		assert.Contains(t, cmd.use, "FILE")
		assert.Contains(t, cmd.long, "YAML")
	}

	flag := getImportCmd().Flags().Lookup("no-progress")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)

	err := getExportCmd().Args(getExportCmd(), nil)
	assert.Error(t, err, "export needs a file name")
}

// TestRunSeeder imports a seed into a SQLite file and exports it back.
func TestRunSeeder(t *testing.T) {
	dir := t.TempDir()
	cfg = config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(dir),
		config.OptDatabasePath(filepath.Join(dir, "lab.db")),
		config.OptJobsNumber(2),
	})

	in := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(in, []byte(seedYAML), 0o644))

	err := runSeeder(func(s lifecycle.Seeder) error {
		return s.Import(context.Background(), in)
	}, false)
	require.NoError(t, err)

	out := filepath.Join(dir, "export.yaml")
	err = runSeeder(func(s lifecycle.Seeder) error {
		return s.Export(context.Background(), out)
	}, false)
	require.NoError(t, err)

	bs, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(bs), "name: Hel")
	assert.Contains(t, string(bs), "Gain 1 fi")
}
