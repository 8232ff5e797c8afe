// Package main is the entry point for the ecosnap command line
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ecosnap-api/internal/config"
)

var (
	cfg *config.Config

	// Flags that override the environment
	storageFlag       string
	redisAddrFlag     string
	playerIDFlag      string
	opponentDelayFlag time.Duration
	logLevelFlag      string
)

var rootCmd = &cobra.Command{
	Use:   "ecosnap",
	Short: "Eco Snap card collection game",
	Long: `Eco Snap turns wildlife photos into collectible species cards.
Capture species to unlock and level up cards, build a party of up to six
and battle Eco Snapper Gustavo.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&storageFlag, "storage", "", "storage backend: redis or memory (env ECOSNAP_STORAGE)")
	flags.StringVar(&redisAddrFlag, "redis", "", "Redis address or URL (env ECOSNAP_REDIS_ADDR)")
	flags.StringVar(&playerIDFlag, "player", "", "player ID (env ECOSNAP_PLAYER_ID)")
	flags.DurationVar(&opponentDelayFlag, "opponent-delay", 0, "pause before the opponent moves (env ECOSNAP_OPPONENT_DELAY)")
	flags.StringVar(&logLevelFlag, "log-level", "", "debug, info, warn or error (env ECOSNAP_LOG_LEVEL)")

	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(partyCmd)
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(speciesCmd)
	rootCmd.AddCommand(battleCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
}

// loadConfig reads the environment, applies flag overrides and installs the
// default logger
func loadConfig(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	loaded, err := config.LoadWith(func(c *config.Config) {
		if flags.Changed("storage") {
			c.Storage = storageFlag
		}
		if flags.Changed("redis") {
			c.RedisAddr = redisAddrFlag
		}
		if flags.Changed("player") {
			c.PlayerID = playerIDFlag
		}
		if flags.Changed("opponent-delay") {
			c.OpponentDelay = opponentDelayFlag
		}
		if flags.Changed("log-level") {
			c.LogLevel = logLevelFlag
		}
		if flags.Changed("port") {
			c.GRPCPort = grpcPortFlag
		}
	})
	if err != nil {
		return err
	}

	slog.SetDefault(loaded.NewLogger(os.Stderr))
	cfg = loaded
	return nil
}
