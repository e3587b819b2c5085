// Package main implements the aesp CLI: a thin cobra wrapper around the
// aesp library that performs no cryptographic work of its own, only file
// I/O, hex decoding, and key-file marshalling.
package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"hermannm.dev/devlog"
)

var logLevel slog.LevelVar

var rootCmd = &cobra.Command{
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Use:   "aesp",
	Short: "From-scratch AES-128/192/256 encryption in ECB, CTR, and GCM",
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{
		Level: &logLevel,
	})))

	rootCmd.PersistentFlags().Bool("debug", false, "Print debug log output")
	rootCmd.PersistentFlags().String("key", "", "Path to the raw key file")

	if err := viper.BindPFlag("key", rootCmd.PersistentFlags().Lookup("key")); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("aesp")
	viper.AutomaticEnv()

	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
}

// requestLogger returns a slog.Logger tagged with a fresh request ID, the
// way a server handler would scope a logger to one inbound call — here,
// one CLI invocation.
func requestLogger() *slog.Logger {
	return slog.Default().With("request_id", uuid.NewString())
}

func debugFromFlags(cmd *cobra.Command) {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		logLevel.Set(slog.LevelDebug)
	}
}
