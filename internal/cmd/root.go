package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lthummus/elapsed/internal/ainit"
	"github.com/lthummus/elapsed/internal/config"
	"github.com/lthummus/elapsed/internal/db"
	"github.com/lthummus/elapsed/internal/db/sqlite"
)

var (
	outputMode string

	openDB = func() (db.DB, error) {
		return sqlite.NewSQLiteFromConfig()
	}
)

// ExitCodeError makes Execute exit with Code without printing anything.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputMode, "output", "o", "", "output mode (plain, table, yaml)")
	_ = viper.BindPFlag(config.KeyOutputMode, rootCmd.PersistentFlags().Lookup("output"))

	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

var rootCmd = &cobra.Command{
	Use:           "elapsed",
	Short:         "elapsed times commands and formats durations",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}

		config.Lock.RLock()
		level := viper.GetString(config.KeyLogLevel)
		config.Lock.RUnlock()

		ainit.ApplyLevel(level)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		log.Debug().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
}
