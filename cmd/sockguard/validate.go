package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/sockguard/internal/config"
	"github.com/yourusername/sockguard/pkg/upstream"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and compile the configuration file, then exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
			os.Exit(1)
		}

		if _, err := upstream.Parse(cfg.Upstream); err != nil {
			fmt.Fprintf(os.Stderr, "invalid upstream: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("ok: %d policy entries, listen=%s, upstream=%s\n", cfg.Policies.Len(), cfg.Listen, cfg.Upstream)
	},
	Example: "# sockguard validate --config /etc/sockguard/config.yaml",
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
