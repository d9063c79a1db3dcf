package main

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"radiochild/repwizard"
)

func catalogSource(ctx context.Context) (repwizard.CatalogSource, error) {
	if !cfg.Catalog.UseS3() {
		return repwizard.NewFileCatalog(cfg.Catalog.Path, logger), nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Catalog.Region))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load aws config")
	}
	client := s3.NewFromConfig(awsCfg)
	return repwizard.NewS3Catalog(client, cfg.Catalog.Bucket, cfg.Catalog.Key, logger), nil
}

func loadEnv(ctx context.Context) (*repwizard.Env, error) {
	src, err := catalogSource(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := src.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return repwizard.NewEnv(cat, logger), nil
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [query]",
	Short: "List available fields, optionally filtered by name or label",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		out := cmd.OutOrStdout()
		for _, c := range env.Catalog.Visible(query, nil) {
			fmt.Fprintf(out, "%s\n", c.Name)
			for _, fld := range c.Fields {
				fmt.Fprintf(out, "  %-30s %s\n", fld.Key(), fld.DisplayName())
			}
		}
		return nil
	},
}

var operatorsCmd = &cobra.Command{
	Use:   "operators TYPE",
	Short: "Show the filter operators offered for a field type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := repwizard.ToFieldType(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, op := range repwizard.OperatorsFor(typ) {
			control := string(repwizard.ValueControlFor(typ, op))
			if control == "" {
				control = "-"
			}
			fmt.Fprintf(out, "%-24s %s\n", op, control)
		}
		return nil
	},
}
