package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the exercise generator over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			e.cfg.Server.Addr = addr
		}

		gen, err := e.generator(cmd, 0)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := api.NewServer(gen, e.cfg.Server.MaxCount, e.log)
		return api.ListenAndServe(ctx, e.cfg.Server, srv.Routes(), e.log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
