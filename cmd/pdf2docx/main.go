// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf2docx CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdf2docx CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf2docx",
	Short: "Convert PDF files into editable Word documents",
	Long: `pdf2docx extracts the text of each PDF page, rebuilds its lines from
fragment positions, and writes a WordprocessingML (.docx) package with one
labelled section per page.

Inputs may be local files or http(s) URLs. Each conversion is recorded in a
local journal that the history subcommand lists.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf2docx.yaml or ~/.config/pdf2docx/pdf2docx.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log conversion stages to stderr")
	rootCmd.PersistentFlags().String("journal", "", "journal database path (default: ~/.local/state/pdf2docx/journal.db)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("journal.path", rootCmd.PersistentFlags().Lookup("journal"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2docx")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf2docx"))
		}
	}

	setDefaults()

	viper.SetEnvPrefix("PDF2DOCX")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
