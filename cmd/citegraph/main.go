// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citegraph CLI. It builds citation
// graphs from a bibliographic source and serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-graph/internal/config"
	"github.com/pdiddy/citation-graph/internal/logging"
	"github.com/pdiddy/citation-graph/internal/lookup"
	"github.com/pdiddy/citation-graph/internal/secrets"
	"github.com/pdiddy/citation-graph/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Loaded once per invocation by the root command.
var (
	appConfig types.Config
	appLog    *logrus.Logger
)

// rootCmd is the base command for the citegraph CLI.
var rootCmd = &cobra.Command{
	Use:   "citegraph",
	Short: "Build citation graphs from paper reference lists",
	Long: `citegraph expands a paper's reference list into a citation graph: the root
paper, the papers it cites, and (up to a depth limit) the papers those cite.
References are looked up in Semantic Scholar, OpenAlex, or an offline SQLite
snapshot. Graphs are printed as JSON, YAML, or Graphviz DOT, or served over
HTTP for a browser visualization.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}

		s, err := secrets.Load(".secrets/", log)
		if err != nil {
			return err
		}
		s.Apply(&cfg.Lookup)
		if len(s) > 0 {
			log.WithField("keys", s.Keys()).Debug("loaded secrets")
		}

		appConfig = cfg
		appLog = log
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citegraph.yaml or ~/.config/citegraph/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level")) //nolint:errcheck // flag exists.
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citegraph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citegraph"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// commandContext returns the command's context, cancelled on SIGINT or
// SIGTERM so an interrupt stops in-flight lookups.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// openSource builds the configured lookup source wrapped with metrics and
// logging. The returned function releases it.
func openSource(cfg types.LookupConfig, log *logrus.Logger) (lookup.Source, func(), error) {
	client := &http.Client{Timeout: cfg.Timeout}
	src, err := lookup.New(cfg, client)
	if err != nil {
		return nil, nil, err
	}

	release := func() {}
	if c, ok := src.(io.Closer); ok {
		release = func() {
			if err := c.Close(); err != nil {
				log.WithError(err).Warn("closing lookup source")
			}
		}
	}
	return lookup.Instrument(src, log), release, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
