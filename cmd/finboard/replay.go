package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"finboard/internal/amqp"
	"finboard/internal/log"
	"finboard/internal/scenario"
)

var errScenariosFailed = errors.New("scenarios failed")

func newReplayCmd() *cobra.Command {
	var (
		assert      bool
		publish     bool
		concurrency int
		runID       string
	)

	cmd := &cobra.Command{
		Use:   "replay <files...>",
		Short: "Replay scripted gesture scenarios and check their expectations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			opts := scenario.Options{
				Base:        a.cfg.Interaction(),
				Mode:        scenario.LogOnly,
				Catalog:     a.catalog,
				Formatter:   a.formatter,
				RunID:       runID,
				Concurrency: a.cfg.ReplayConcurrency,
			}
			if assert {
				opts.Mode = scenario.Strict
			}
			if cmd.Flags().Changed("concurrency") {
				opts.Concurrency = concurrency
			}

			if publish {
				if a.cfg.AMQPURL == "" {
					return errors.New("--publish requires AMQP_URL")
				}
				client, err := amqp.NewClient(a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue, a.logger)
				if err != nil {
					return fmt.Errorf("connect to AMQP: %w", err)
				}
				defer func() {
					if err := client.Close(); err != nil {
						a.logger.Error("Failed to close AMQP client", log.FieldError, err)
					}
				}()
				opts.Publisher = client
			}

			ctx := log.WithContext(cmd.Context(), a.logger)
			results, err := scenario.RunFiles(ctx, args, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, res := range results {
				status := "PASS"
				if len(res.Failures) > 0 {
					status = "FAIL"
				}
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", status, res.Name, res.Path)
				for _, f := range res.Failures {
					_, _ = fmt.Fprintf(out, "\t%s\n", f)
				}
				if res.Summary.Count > 0 {
					_, _ = fmt.Fprintf(out, "\tselected %d: %s\n", res.Summary.Count, a.formatter.Format(res.Summary.Total))
				}
			}

			if n := scenario.Failed(results); n > 0 {
				return fmt.Errorf("%w: %d of %d", errScenariosFailed, n, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&assert, "assert", false, "fail when an expectation is not met")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish results to AMQP")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "scenarios replayed in parallel (default REPLAY_CONCURRENCY)")
	cmd.Flags().StringVar(&runID, "run-id", "", "run identifier (default random)")
	return cmd
}
