package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fundexplorer/internal/coordinator"
	"fundexplorer/internal/fund"
)

func newDetailCmd(a *app) *cobra.Command {
	var (
		rangeLabel string
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "detail CODE...",
		Short: "Show NAV statistics and history of one or more schemes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := fund.ParseTimeRange(rangeLabel)
			if err != nil {
				return err
			}

			outcomes, err := coordinator.New(a.service, a.cfg.Concurrency).Run(cmd.Context(), args)
			if err != nil {
				return err
			}

			now := time.Now()
			out := cmd.OutOrStdout()
			var failed []*ResultError
			for i, o := range outcomes {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if o.Result.IsError() {
					printError(out, fmt.Sprintf("%s: %s", o.Code, o.Result.Kind.Message()))
					failed = append(failed, &ResultError{Kind: o.Result.Kind})
					continue
				}

				s := detailState(o.Code, tr, o.Result, now)
				if s.Stats.Skipped > 0 {
					a.logger.Warn("skipped malformed NAV values",
						"scheme_code", o.Code,
						"range", tr.Label,
						"skipped", s.Stats.Skipped,
					)
				}
				printDetail(out, s, !noHistory)
			}

			switch {
			case len(failed) == 0:
				return nil
			case len(failed) == len(outcomes):
				return failed[0]
			default:
				return fmt.Errorf("%d of %d schemes failed to load: %w", len(failed), len(outcomes), failed[0])
			}
		},
	}

	cmd.Flags().StringVar(&rangeLabel, "range", fund.OneMonth.Label, "time range: 1M, 3M, 6M or 1Y")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "omit the NAV table")

	return cmd
}
