package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"radiochild/repwizard"
)

var (
	specPath   string
	outputName string
)

func resolveSpec(cmd *cobra.Command) (*repwizard.ReportSpec, error) {
	env, err := loadEnv(cmd.Context())
	if err != nil {
		return nil, err
	}
	spec, err := repwizard.ReadReportSpec(specPath)
	if err != nil {
		return nil, err
	}
	return spec.Resolve(env)
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Check a report spec against the catalog and write it out",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputType, err := repwizard.ParseOutputType(outputName)
		if err != nil {
			return err
		}
		spec, err := resolveSpec(cmd)
		if err != nil {
			return err
		}
		repwizard.ShowReportSpec(spec, logger)
		logger.Infof("%s", repwizard.Summary(spec))

		sW := repwizard.NewSpecWriter(logger, cmd.OutOrStdout(), outputType)
		return sW.WriteSpec(spec)
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Print the hidden form inputs the wizard would post for a report spec",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := resolveSpec(cmd)
		if err != nil {
			return err
		}
		values, err := spec.Submission().Encode()
		if err != nil {
			return err
		}
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, val := range values[name] {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, val)
			}
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{composeCmd, encodeCmd} {
		c.Flags().StringVarP(&specPath, "spec", "s", "", "report spec file (JSON or YAML)")
		_ = c.MarkFlagRequired("spec")
	}
	composeCmd.Flags().StringVarP(&outputName, "output", "o", "text", "output format: text, json or msgpack")
}
