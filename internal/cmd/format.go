package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lthummus/elapsed/durations"
	"github.com/lthummus/elapsed/internal/render"
)

var (
	formatDuration time.Duration
	formatSeconds  uint64
	formatMillis   uint32

	ErrNegativeDuration = errors.New("elapsed: format: duration must not be negative")
	ErrNoDuration       = errors.New("elapsed: format: a duration, --duration or --seconds/--millis is required")
)

func init() {
	formatCmd.Flags().DurationVarP(&formatDuration, "duration", "d", 0, "duration to format, e.g. 1h2m3.5s")
	formatCmd.Flags().Uint64VarP(&formatSeconds, "seconds", "s", 0, "whole seconds to format")
	formatCmd.Flags().Uint32VarP(&formatMillis, "millis", "m", 0, "milliseconds to format")
	formatCmd.MarkFlagsMutuallyExclusive("duration", "seconds")
	formatCmd.MarkFlagsMutuallyExclusive("duration", "millis")
}

var formatCmd = &cobra.Command{
	Use:   "format [duration]",
	Short: "format a duration",
	Long: "formats a duration as weeks, days, hours, minutes and seconds. The duration is given " +
		"as a Go duration (argument or --duration) or as --seconds and --millis",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := formatResult(cmd, args)
		if err != nil {
			return err
		}

		r, err := render.NewFromConfig()
		if err != nil {
			return err
		}

		return r.Result(cmd.OutOrStdout(), res)
	},
}

func formatResult(cmd *cobra.Command, args []string) (render.Result, error) {
	flags := cmd.Flags()

	switch {
	case len(args) == 1:
		if flags.Changed("duration") || flags.Changed("seconds") || flags.Changed("millis") {
			return render.Result{}, fmt.Errorf("elapsed: format: give the duration as an argument or as flags, not both")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return render.Result{}, fmt.Errorf("elapsed: format: could not parse duration: %w", err)
		}
		return durationResult(d)
	case flags.Changed("duration"):
		return durationResult(formatDuration)
	case flags.Changed("seconds") || flags.Changed("millis"):
		return render.ResultFromComponents(durations.DecomposeSeconds(formatSeconds, formatMillis)), nil
	default:
		return render.Result{}, ErrNoDuration
	}
}

func durationResult(d time.Duration) (render.Result, error) {
	if d < 0 {
		return render.Result{}, ErrNegativeDuration
	}
	return render.ResultFromDuration(d), nil
}
