package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lthummus/elapsed/internal/config"
)

var configWritePath string

func init() {
	configWriteCmd.Flags().StringVarP(&configWritePath, "path", "p", "", "where to write the config when no config file was loaded")

	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configWriteCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "inspect and write configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "check the configuration for errors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Lock.RLock()
		errorsFound := config.ValidateConfig()
		config.Lock.RUnlock()

		if len(errorsFound) > 0 {
			for _, curr := range errorsFound {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", curr)
			}
			return fmt.Errorf("elapsed: config: found %d errors: %s", len(errorsFound), strings.Join(errorsFound, "; "))
		}

		_, err := fmt.Fprintln(cmd.OutOrStdout(), "config ok")
		return err
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "write the effective configuration as yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configWritePath
		if path == "" {
			path = filepath.Join(config.Dir(), "elapsed.yaml")
		}

		written, err := config.WriteCurrentConfigState(path)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", written)
		return err
	},
}
