package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sockguard",
	Short: "A protective reverse proxy that sits in front of a container engine socket",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "/etc/sockguard/config.yaml", "configuration file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
