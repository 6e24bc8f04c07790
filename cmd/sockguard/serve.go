package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/sockguard/internal/config"
	"github.com/yourusername/sockguard/internal/logging"
	"github.com/yourusername/sockguard/internal/sigs"
	"github.com/yourusername/sockguard/pkg/proxy"
	"github.com/yourusername/sockguard/pkg/socketutil"
	"github.com/yourusername/sockguard/pkg/upstream"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reverse proxy in front of the container engine socket",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}

		log := logging.New(logging.Options{
			Level:    logging.ParseLevel(cfg.LogLevel),
			Filename: cfg.LogFile,
		})
		logging.SetDefault(log)
		defer log.Sync()

		singleton, err := socketutil.AcquireSingleton(cfg.Listen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to acquire singleton: %v\n", err)
			os.Exit(1)
		}
		defer singleton.Release()

		ln, err := socketutil.Listen(cfg.Listen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to listen on %s: %v\n", cfg.Listen, err)
			os.Exit(1)
		}

		upstreamAddr, err := upstream.Parse(cfg.Upstream)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse upstream: %v\n", err)
			os.Exit(1)
		}

		handler := &proxy.Handler{
			Policies: cfg.Policies,
			Filters:  cfg.Filters,
			Upstream: upstreamAddr,
			Log:      log,
		}
		srv := proxy.NewServer(handler)

		serveErr := make(chan error, 1)
		go func() { serveErr <- srv.Serve(ln) }()

		select {
		case <-sigs.Terminate():
			log.Infof("shutting down")
			srv.Close()
		case err := <-serveErr:
			if err != nil {
				log.Errorf("server stopped: %v", err)
				os.Exit(1)
			}
		}
	},
	Example: "# sockguard serve --config /etc/sockguard/config.yaml",
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
