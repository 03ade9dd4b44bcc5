package test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"creditflow/delivery"
	"creditflow/dispute"
	"creditflow/letters"
	"creditflow/metro2"
	"creditflow/test/actors"
	"creditflow/test/chaos"
	"creditflow/test/infra"
	"creditflow/test/oracles"
)

var (
	flDuration    = flag.Duration("duration", 30*time.Second, "how long to run stress")
	flConcurrency = flag.Int("concurrency", 4, "number of concurrent actors per dispute")
	flSeed        = flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flDSN         = flag.String("dsn", "", "existing Postgres DSN to reuse (avoids Docker)")
)

// TestEnforcementConcurrency races escalators, resolvers, advancers and the
// follow-up sweeper over a shared set of disputes in a real Postgres, while
// the oracles continuously verify the workflow invariants.
func TestEnforcementConcurrency(t *testing.T) {
	flag.Parse()
	seed := *flSeed
	rng := rand.New(rand.NewSource(seed))

	ctx, cancel := context.WithTimeout(context.Background(), *flDuration+60*time.Second)
	defer cancel()

	var (
		pgC        *infra.PGContainer
		dsn        string
		err        error
		usedShared bool
	)
	switch {
	case *flDSN != "":
		dsn = *flDSN
		usedShared = true
		pgC = &infra.PGContainer{}
	case os.Getenv("CREDITFLOW_TEST_PG_DSN") != "":
		dsn = os.Getenv("CREDITFLOW_TEST_PG_DSN")
		usedShared = true
		pgC = &infra.PGContainer{}
	default:
		if !dockerAvailable(ctx) {
			t.Skip("no Docker and no CREDITFLOW_TEST_PG_DSN; skipping stress run")
		}
		pgC, dsn, err = infra.StartPostgres16(ctx, "")
		if err != nil {
			t.Fatalf("start postgres: %v", err)
		}
	}
	defer pgC.Terminate(context.Background())

	pool, teardown, err := infra.ApplySchema(ctx, dsn, usedShared)
	if err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	defer pool.Close()
	defer func() {
		if err := teardown(context.Background()); err != nil {
			t.Logf("teardown warning: %v", err)
		}
	}()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := dispute.NewPGStore(pool, nil)
	composer := letters.NewComposer(nil, logger)
	courier := delivery.NewCourier(nil, logger)

	// A near-immediate investigation window keeps the sweeper busy for the
	// whole run.
	engine := dispute.NewEngine(store, composer, courier, logger).
		WithPolicy(dispute.Policy{
			FollowUpWindow:   2 * time.Second,
			CompletionWindow: time.Hour,
		})

	_, disputes, err := engine.Initialize(ctx, stressClient(rng))
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if len(disputes) == 0 {
		t.Fatalf("no disputes opened")
	}

	g, ctx2 := errgroup.WithContext(ctx)
	stop := make(chan struct{})

	for _, d := range disputes {
		for i := 0; i < *flConcurrency; i++ {
			g.Go(func() error { return actors.Escalator(ctx2, engine, d.ID, stop) })
			g.Go(func() error { return actors.Advancer(ctx2, engine, store, d.ID, stop) })
		}
		g.Go(func() error { return actors.Resolver(ctx2, engine, d.ID, stop) })
	}
	g.Go(func() error { return actors.Sweeper(ctx2, engine, stop) })
	go chaos.TerminateRandomBackend(ctx2, pool, stop)

	deadline := time.Now().Add(*flDuration)
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	var failed bool
loop:
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			name, row, err := oracles.Run(ctx2, pool)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					break loop
				}
				t.Fatalf("oracle error: %v", err)
			}
			if name != "" {
				failed = true
				t.Fatalf("Oracle %s failed. First row: %s (seed=%d)", name, row, seed)
			}
		}
	}

	close(stop)
	if err := g.Wait(); err != nil && !failed {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("actors errored: %v", err)
		}
	}

	// Final sweep of the invariants after the dust settles.
	if name, row, err := oracles.Run(context.Background(), pool); err != nil {
		t.Fatalf("final oracle error: %v", err)
	} else if name != "" {
		t.Fatalf("Oracle %s failed after shutdown. First row: %s (seed=%d)", name, row, seed)
	}
}

func dockerAvailable(ctx context.Context) bool {
	if _, err := exec.LookPath("docker"); err != nil {
		return false
	}
	c := exec.CommandContext(ctx, "docker", "info")
	c.Stdout = io.Discard
	c.Stderr = io.Discard
	return c.Run() == nil
}

// stressClient reports several tradelines with distinct violation shapes so
// the run covers different dispute types and priorities.
func stressClient(rng *rand.Rand) dispute.Client {
	base := metro2.TradelineRecord{
		ProcessingIndicator:   "A",
		TimeStamp:             "2025-06-15T10:30:00Z",
		IdentificationNumber:  "FURN0001",
		CycleIdentifier:       "01",
		PortfolioType:         "R",
		AccountType:           "01",
		DateOpened:            "2020-01-15",
		AccountStatus:         "13",
		PaymentRating:         "1",
		PaymentHistoryProfile: "111111111111111111111111",
		DateReported:          "2025-06-01",
		Surname:               "Walker",
		FirstName:             "Dana",
		SSN:                   "123456789",
		ECOACode:              "1",
		Address1:              "100 Main St",
		City:                  "Dallas",
		State:                 "TX",
		ZipCode:               "75201",
	}

	bureaus := []letters.Bureau{letters.BureauExperian, letters.BureauEquifax, letters.BureauTransUnion}
	var tradelines []dispute.ReportedTradeline
	for i := 0; i < 3; i++ {
		rec := base
		rec.AccountNumber = fmt.Sprintf("40001234123412%02d", i)
		switch i {
		case 0:
			rec.DateOpened = "2030-01-01"
		case 1:
			rec.AmountPastDue = "250"
		default:
			rec.AccountStatus = "89"
		}
		tradelines = append(tradelines, dispute.ReportedTradeline{
			ID:               fmt.Sprintf("tl-%d", i),
			Bureau:           bureaus[rng.Intn(len(bureaus))],
			FurnisherName:    "First National Bank",
			FurnisherAddress: "First National Bank\n1 Bank Plaza\nChicago, IL 60601",
			Record:           rec,
		})
	}

	return dispute.Client{
		ID:         fmt.Sprintf("client-%d", rng.Int63()),
		Name:       "Dana Walker",
		Address:    "100 Main St\nDallas, TX 75201",
		SSN:        "123456789",
		Tradelines: tradelines,
	}
}
