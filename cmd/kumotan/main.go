package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kumotan/kumotan/internal/profile"
	"github.com/kumotan/kumotan/plugin/morph"
	"github.com/kumotan/kumotan/plugin/segmenter"
	"github.com/kumotan/kumotan/server"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "kumotan",
	Short: "Post-text segmentation and selection service for the Kumotan vocabulary client",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		instanceProfile := profileFromViper()
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return err
		}

		logger := newLogger(instanceProfile)
		slog.SetDefault(logger)

		s, err := server.NewServer(ctx, instanceProfile, logger)
		if err != nil {
			return err
		}
		return s.Start(ctx)
	},
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [text]",
	Short: "Tokenize text and print the token stream as JSON",
	Args:  cobra.ArbitraryArgs,
	RunE: func(_ *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if text == "" {
			return fmt.Errorf("no text given")
		}

		tokenizer := segmenter.NewTokenizer()
		if viper.GetBool("morph") {
			splitter, err := morph.NewSplitter(nil)
			if err != nil {
				return err
			}
			tokenizer = segmenter.NewTokenizer(segmenter.WithJapaneseSplitter(splitter))
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(tokenizer.Tokenize(text, nil))
	},
}

func profileFromViper() *profile.Profile {
	return &profile.Profile{
		Mode:                  viper.GetString("mode"),
		Addr:                  viper.GetString("addr"),
		Port:                  viper.GetInt("port"),
		Version:               version,
		DoubleTapWindowMs:     viper.GetInt("double-tap-window-ms"),
		MorphEnabled:          viper.GetBool("morph"),
		MorphPolicyPath:       viper.GetString("morph-policy"),
		TokenCacheSize:        viper.GetInt("token-cache-size"),
		MaxConcurrentTokenize: viper.GetInt64("max-concurrent-tokenize"),
	}
}

func newLogger(p *profile.Profile) *slog.Logger {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8230, "port of server")
	rootCmd.PersistentFlags().Int("double-tap-window-ms", 300, "tap/double-tap disambiguation window in milliseconds")
	rootCmd.PersistentFlags().Bool("morph", true, "enable the dictionary-backed Japanese splitter")
	rootCmd.PersistentFlags().String("morph-policy", "", "path to a YAML meaningfulness policy")
	rootCmd.PersistentFlags().Int("token-cache-size", 1024, "max memoized tokenizations")
	rootCmd.PersistentFlags().Int64("max-concurrent-tokenize", 8, "max concurrent tokenize requests")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("kumotan")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(tokenizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
