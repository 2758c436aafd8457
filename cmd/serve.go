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
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cardlab/cardlab/internal/ioevents"
	"github.com/cardlab/cardlab/internal/iolab"
	"github.com/cardlab/cardlab/internal/iostore"
	"github.com/cardlab/cardlab/internal/ioweb"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API for the card editor",
		Long: `Serve starts the HTTP API used by the card editor.

This command:
  1. Connects to the configured database
  2. Creates or migrates the schema
  3. Starts publishing change events (log or Redis)
  4. Serves the API until interrupted (Ctrl-C)

Examples:
  cardlab serve
  cardlab serve --port 9000
  cardlab serve -d postgres -H 0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().StringP("host", "H", "", "interface to listen on")
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on")

	return serveCmd
}

func runServe(cmd *cobra.Command) error {
	for _, fn := range []flagFunc{hostFlag, portFlag} {
		fn(cmd)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

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
	srv := ioweb.New(lab, cfg.Server)

	start := time.Now()
	gn.Info("Serving the card lab API at <em>http://%s</em>", srv.Addr())
	if err = srv.ListenAndServe(ctx); err != nil {
		return err
	}

	uptime := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("API server stopped", "uptime", uptime)
	gn.Info("Server stopped after <em>%s</em>", uptime)
	return nil
}
