package cmd

import (
	"github.com/cardlab/cardlab/pkg/config"
	"github.com/spf13/cobra"
)

// flagFunc moves the value of a flag into cfg when the flag was set.
// It runs after the config file and env vars, so flags win.
type flagFunc func(cmd *cobra.Command)

func driverFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("driver") {
		return
	}
	s, _ := cmd.Flags().GetString("driver")
	cfg.Update([]config.Option{config.OptDatabaseDriver(s)})
}

func jobsFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("jobs") {
		return
	}
	i, _ := cmd.Flags().GetInt("jobs")
	cfg.Update([]config.Option{config.OptJobsNumber(i)})
}

func hostFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("host") {
		return
	}
	s, _ := cmd.Flags().GetString("host")
	cfg.Update([]config.Option{config.OptServerHost(s)})
}

func portFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("port") {
		return
	}
	i, _ := cmd.Flags().GetInt("port")
	cfg.Update([]config.Option{config.OptServerPort(i)})
}
