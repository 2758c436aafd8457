package cmd

import (
	"testing"

	"github.com/cardlab/cardlab/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagFuncs(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{Use: "test"}
		c.Flags().StringP("driver", "d", "", "")
		c.Flags().IntP("jobs", "j", 0, "")
		c.Flags().StringP("host", "H", "", "")
		c.Flags().IntP("port", "p", 0, "")
		return c
	}

	tests := []struct {
		msg   string
		args  []string
		check func(*config.Config) bool
	}{
		{"driver", []string{"-d", "postgres"},
			func(c *config.Config) bool { return c.Database.Driver == "postgres" }},
		{"bad driver", []string{"-d", "oracle"},
			func(c *config.Config) bool { return c.Database.Driver == "sqlite" }},
		{"jobs", []string{"-j", "3"},
			func(c *config.Config) bool { return c.JobsNumber == 3 }},
		{"host", []string{"-H", "0.0.0.0"},
			func(c *config.Config) bool { return c.Server.Host == "0.0.0.0" }},
		{"port", []string{"--port", "9000"},
			func(c *config.Config) bool { return c.Server.Port == 9000 }},
		{"unset", nil,
			func(c *config.Config) bool { return c.Server.Port == 8000 }},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			cfg = config.New()
			c := newCmd()
			require.NoError(t, c.ParseFlags(tt.args))
			for _, fn := range []flagFunc{driverFlag, jobsFlag, hostFlag, portFlag} {
				fn(c)
			}
			assert.True(t, tt.check(cfg))
		})
	}
}

func TestGetServeCmd(t *testing.T) {
	cmd := getServeCmd()
	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Long, "Ctrl-C")

	port := cmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	host := cmd.Flags().Lookup("host")
	require.NotNil(t, host)
	assert.Equal(t, "H", host.Shorthand)
}
