package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ad-metrics-service/internal/config"
	"ad-metrics-service/internal/devices/adapters/adsapi"
	"ad-metrics-service/internal/devices/adapters/rowjson"
	"ad-metrics-service/internal/devices/core/usecase"
)

func newAggregateCommand() *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate rows from a JSON file or stdin",
		Long:  "Reads a JSON array of rows (or {\"rows\": [...]}) and prints the per-device totals.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runAggregate(cmd.Context(), in, cmd.OutOrStdout(), asJSON)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "rows file, - or empty for stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func runAggregate(ctx context.Context, in io.Reader, out io.Writer, asJSON bool) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}

	rows, err := rowjson.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}

	report := usecase.NewSummarizeRowsUseCase().Execute(ctx, rows)
	return writeReport(out, report, asJSON)
}

func newFetchCommand() *cobra.Command {
	var (
		customerID string
		from       string
		to         string
		asJSON     bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Query the ads API and aggregate the answer",
		Long:  "Uses the ADS_API_* environment (or .env) to run a device-segmented report query.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateAdsAPI(); err != nil {
				return err
			}

			client := adsapi.New(&http.Client{Timeout: cfg.AdsAPI.Timeout}, adsapi.Config{
				BaseURL:        cfg.AdsAPI.BaseURL,
				DeveloperToken: cfg.AdsAPI.DeveloperToken,
				AccessToken:    cfg.AdsAPI.AccessToken,
				RatePerSecond:  cfg.AdsAPI.RatePerSecond,
				Burst:          cfg.AdsAPI.Burst,
				BreakerTimeout: cfg.AdsAPI.BreakerTimeout,
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			report, err := usecase.NewGetDeviceReportUseCase(client, nil).Execute(ctx, usecase.ReportQueryInput{
				CustomerID: customerID,
				From:       from,
				To:         to,
			})
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, asJSON)
		},
	}

	cmd.Flags().StringVarP(&customerID, "customer", "c", "", "ads customer id")
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall deadline")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
