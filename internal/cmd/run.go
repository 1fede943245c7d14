package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lthummus/elapsed/internal/config"
	"github.com/lthummus/elapsed/internal/db"
	"github.com/lthummus/elapsed/internal/render"
	"github.com/lthummus/elapsed/internal/runner"
)

var noHistory bool

func init() {
	runCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run in the history")
	runCmd.Flags().SetInterspersed(false)
}

var runCmd = &cobra.Command{
	Use:   "run [flags] [--] command [args...]",
	Short: "run a command and report how long it took",
	Long: "runs a command attached to this terminal and prints how long it took to stderr once it " +
		"exits. elapsed exits with the exit code of the command",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := render.NewFromConfig()
		if err != nil {
			return err
		}

		var database db.DB
		if recordHistory() {
			database, err = openDB()
			if err != nil {
				log.Warn().Err(err).Msg("could not open history database; this run will not be recorded")
				database = nil
			} else {
				defer database.Close()
			}
		}

		run := runner.New(database)
		run.Stdout = cmd.OutOrStdout()
		run.Stderr = cmd.ErrOrStderr()
		run.Stdin = cmd.InOrStdin()

		result, err := run.Run(cmd.Context(), args[0], args[1:]...)
		if err != nil {
			return err
		}

		if err := r.Result(cmd.ErrOrStderr(), render.ResultFromRun(result)); err != nil {
			return err
		}

		if result.ExitCode != 0 {
			return &ExitCodeError{Code: result.ExitCode}
		}

		return nil
	},
}

func recordHistory() bool {
	if noHistory {
		return false
	}

	config.Lock.RLock()
	defer config.Lock.RUnlock()
	return viper.GetBool(config.KeyHistoryEnabled)
}
