package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kachayev/nasus/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "nasus [port]",
	Short:   "Zero-configuration HTTP file server",
	Long: `Nasus exposes a local directory tree over HTTP for browsing and
download. Run it with no arguments to share the current directory on
port 4444.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		var configFiles []string
		if configFile != "" {
			configFiles = append(configFiles, configFile)
		}

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}
		setupLogging(cfg.Log)

		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
	RunE: runServe,
}

func init() {
	flags := rootCmd.Flags()

	flags.String("config", "", "config file path (default: ./config.yaml)")
	flags.String("bind", "", "address to bind to (default: 0.0.0.0, env: NASUS_SERVER_BIND)")
	flags.StringP("dir", "d", "", "directory to serve (default: current directory)")
	flags.String("index-doc", "", "serve this document instead of the listing when a directory contains it")
	flags.Bool("no-index", false, "disable directory listings")
	flags.StringSlice("exclude", nil, "glob pattern hiding matching entries from listings (repeatable)")
	flags.Bool("follow-symlink", false, "serve and list symbolic links")
	flags.Bool("include-hidden", false, "serve and list hidden files")
	flags.Bool("no-cache", false, "disable cache headers and conditional requests")
	flags.Bool("no-compression", false, "disable response compression")
	flags.String("cors-origin", "", "enable cross-origin requests from this origin")
	flags.String("cors-methods", "", "override the allowed cross-origin methods")
	flags.String("cors-allow-headers", "", "allowed cross-origin request headers")
	flags.String("auth", "", "require basic authentication, as user or user:password")
	flags.String("realm", "", "basic authentication realm (default: nasus)")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address")
	flags.String("log-level", "", "log level: debug, info, warn, error (default: info)")
	flags.String("log-format", "", "log format: text, json (default: text)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
