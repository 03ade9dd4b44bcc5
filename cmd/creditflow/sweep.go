package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"creditflow/ai"
	"creditflow/config"
	"creditflow/db"
	"creditflow/delivery"
	"creditflow/dispute"
	"creditflow/letters"
	"creditflow/metrics"
	"creditflow/pii"
)

func newSweepCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Advance disputes whose investigation deadline has passed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := db.NewPool(ctx, cfg.Database.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			var cipher *pii.Cipher
			if cfg.PII.Passphrase != "" {
				cipher, err = pii.NewCipher(cfg.PII.Passphrase, cfg.PII.Salt)
				if err != nil {
					return err
				}
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			store := dispute.NewPGStore(pool, cipher)
			composer := letters.NewComposer(nil, logger)
			courier := delivery.NewCourier(nil, logger)
			set := metrics.New(prometheus.NewRegistry())

			engine := dispute.NewEngine(store, composer, courier, logger).
				WithMetrics(set).
				WithDeliveryMethod(delivery.Method(cfg.Letters.DefaultMethod)).
				WithPolicy(dispute.Policy{
					FollowUpWindow:   cfg.Policy.FollowUpWindow(),
					CompletionWindow: cfg.Policy.CompletionWindow(),
				})
			if cfg.AI.Enabled {
				// No scoring backend ships with the binary yet; the bounded
				// scorer degrades to the neutral estimate and says so.
				logger.Warn("ai scoring enabled without a backend, estimates stay neutral")
				engine = engine.WithScorer(ai.NewBoundedScorer(nil, cfg.AI.Timeout.Std(), logger))
			}

			moved, err := engine.SweepFollowUps(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "advanced %d overdue dispute(s)\n", moved)
			return nil
		},
	}
}
