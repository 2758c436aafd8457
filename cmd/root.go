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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cardlab/cardlab/internal/iofs"
	"github.com/cardlab/cardlab/internal/iologger"
	app "github.com/cardlab/cardlab/pkg"
	"github.com/cardlab/cardlab/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd builds the cardlab command with all its subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "cardlab",
		Short:   "Authoring backend for the card game lab",
		Long: `cardlab stores the cards, passives and keyword abilities of a
card game, keeps every saved version of them, and serves them to the
card editor over a JSON API.

Passives and keyword abilities are shared by many cards. Changing one
of them updates the text on every card that uses it, and each affected
card gets a new version.

Configuration lives in ~/.config/cardlab/config.yaml and can be
overridden with CARDLAB_* environment variables. SQLite is used by
default, PostgreSQL and MySQL are also supported.`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for cardlab")

	rootCmd.PersistentFlags().StringP(
		"driver", "d", "",
		"database backend: sqlite, postgres or mysql",
	)
	rootCmd.PersistentFlags().IntP(
		"jobs", "j", 0,
		"number of concurrent workers",
	)

	rootCmd.AddCommand(
		getServeCmd(),
		getMigrateCmd(),
		getImportCmd(),
		getExportCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Log to file with defaults until the user's settings are known.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	for _, fn := range []flagFunc{driverFlag, jobsFlag} {
		fn(cmd)
	}

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
	)
	return nil
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.DecodeConfigError(cfgPath, err)
	}

	return &res, nil
}

// initEnvVars binds the allowed environment variables one by one, so
// the list below is the full list of supported variables. They match
// the fields of config.ToOptions().
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("CARDLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "CARDLAB_DATABASE_DRIVER")
	v.BindEnv("database.host", "CARDLAB_DATABASE_HOST")
	v.BindEnv("database.port", "CARDLAB_DATABASE_PORT")
	v.BindEnv("database.user", "CARDLAB_DATABASE_USER")
	v.BindEnv("database.password", "CARDLAB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "CARDLAB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "CARDLAB_DATABASE_SSL_MODE")
	v.BindEnv("database.path", "CARDLAB_DATABASE_PATH")

	// Server configuration
	v.BindEnv("server.host", "CARDLAB_SERVER_HOST")
	v.BindEnv("server.port", "CARDLAB_SERVER_PORT")
	v.BindEnv("server.allowed_origins", "CARDLAB_SERVER_ALLOWED_ORIGINS")
	v.BindEnv("server.request_timeout", "CARDLAB_SERVER_REQUEST_TIMEOUT")

	// Events configuration
	v.BindEnv("events.redis_enabled", "CARDLAB_EVENTS_REDIS_ENABLED")
	v.BindEnv("events.redis_addr", "CARDLAB_EVENTS_REDIS_ADDR")
	v.BindEnv("events.redis_password", "CARDLAB_EVENTS_REDIS_PASSWORD")
	v.BindEnv("events.redis_db", "CARDLAB_EVENTS_REDIS_DB")
	v.BindEnv("events.channel", "CARDLAB_EVENTS_CHANNEL")

	// Log configuration
	v.BindEnv("log.level", "CARDLAB_LOG_LEVEL")
	v.BindEnv("log.format", "CARDLAB_LOG_FORMAT")
	v.BindEnv("log.destination", "CARDLAB_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "CARDLAB_JOBS_NUMBER")

	v.AutomaticEnv()
}
