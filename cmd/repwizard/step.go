package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"radiochild/repwizard"
)

var stepCmd = &cobra.Command{
	Use:   "step PAGE.html",
	Short: "Report which wizard step is active in a saved wizard page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return errors.Wrapf(err, "failed to read from %s", args[0])
		}
		defer file.Close()

		kind, err := repwizard.DetectStep(file)
		if err != nil {
			return errors.Wrapf(err, "page %s", args[0])
		}
		logger.Debugf("Detected %s step in %s", kind, args[0])
		fmt.Fprintln(cmd.OutOrStdout(), kind)
		return nil
	},
}
