package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lthummus/elapsed/internal/config"
	"github.com/lthummus/elapsed/internal/db"
	"github.com/lthummus/elapsed/internal/render"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of runs to show (default history.limit)")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "list recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := historyLimit
		if limit <= 0 {
			config.Lock.RLock()
			limit = viper.GetInt(config.KeyHistoryLimit)
			config.Lock.RUnlock()
		}

		r, err := render.NewFromConfig()
		if err != nil {
			return err
		}

		database, err := openDB()
		if err != nil {
			log.Error().Err(err).Msg("could not open history database")
			return err
		}
		defer database.Close()

		runs, err := database.ListRuns(cmd.Context(), limit)
		if err != nil {
			log.Error().Err(err).Int("limit", limit).Msg("could not list runs")
			return err
		}

		results := make([]render.Result, 0, len(runs))
		for _, curr := range runs {
			results = append(results, render.ResultFromRun(curr))
		}

		return r.History(cmd.OutOrStdout(), results)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show id",
	Short: "show a single recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := render.NewFromConfig()
		if err != nil {
			return err
		}

		database, err := openDB()
		if err != nil {
			log.Error().Err(err).Msg("could not open history database")
			return err
		}
		defer database.Close()

		run, err := database.GetRun(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, db.ErrRunNotFound) {
				return fmt.Errorf("elapsed: history: no run with id %s", args[0])
			}
			log.Error().Err(err).Str("run_id", args[0]).Msg("could not get run")
			return err
		}

		return r.Result(cmd.OutOrStdout(), render.ResultFromRun(run))
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "delete all recorded runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			log.Error().Err(err).Msg("could not open history database")
			return err
		}
		defer database.Close()

		deleted, err := database.ClearRuns(cmd.Context())
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d runs\n", deleted)
		return err
	},
}
