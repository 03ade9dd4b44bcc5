package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// transitTimes is the advertised delivery window per transport.
var transitTimes = map[Method]time.Duration{
	MethodElectronic: 0,
	MethodFax:        24 * time.Hour,
	MethodPostal:     5 * 24 * time.Hour,
}

// Courier is the in-process Sender. It stamps a receipt per dispatch and
// records the letter with the configured recorder, which in production is a
// print-and-mail integration and in development a log line.
type Courier struct {
	recorder Recorder
	logger   *slog.Logger
	idGen    func() string
	now      func() time.Time
}

// Recorder accepts a dispatched letter for physical or electronic handling.
type Recorder interface {
	Record(ctx context.Context, letter Letter, method Method) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(ctx context.Context, letter Letter, method Method) error

func (f RecorderFunc) Record(ctx context.Context, letter Letter, method Method) error {
	return f(ctx, letter, method)
}

// NewCourier builds a courier. A nil recorder accepts every letter.
func NewCourier(recorder Recorder, logger *slog.Logger) *Courier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Courier{
		recorder: recorder,
		logger:   logger,
		idGen:    uuid.NewString,
		now:      time.Now,
	}
}

// WithIDGenerator overrides delivery ID generation.
func (c *Courier) WithIDGenerator(gen func() string) *Courier {
	c.idGen = gen
	return c
}

// WithClock overrides receipt timestamps.
func (c *Courier) WithClock(now func() time.Time) *Courier {
	c.now = now
	return c
}

// Send dispatches the letter and returns its receipt. An unsupported method
// or a recorder failure yields ErrSendFailed.
func (c *Courier) Send(ctx context.Context, letter Letter, method Method) (Receipt, error) {
	if !method.Valid() {
		return Receipt{}, fmt.Errorf("delivery: method %q: %w", method, ErrSendFailed)
	}
	if c.recorder != nil {
		if err := c.recorder.Record(ctx, letter, method); err != nil {
			return Receipt{}, fmt.Errorf("delivery: record letter %s: %v: %w", letter.ID, err, ErrSendFailed)
		}
	}

	sentAt := c.now()
	receipt := Receipt{
		DeliveryID:        c.idGen(),
		Method:            method,
		SentAt:            sentAt,
		EstimatedDelivery: sentAt.Add(transitTimes[method]),
	}
	c.logger.Info("letter dispatched",
		"letter_id", letter.ID, "delivery_id", receipt.DeliveryID,
		"method", method, "recipient", letter.Recipient)
	return receipt, nil
}
