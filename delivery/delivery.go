// Package delivery abstracts the channels that carry finished dispute letters
// to bureaus and furnishers.
package delivery

import (
	"context"
	"errors"
	"time"
)

// ErrSendFailed wraps any transport failure so callers can branch on the
// class of error without knowing the channel.
var ErrSendFailed = errors.New("delivery: send failed")

// Method is the transport a letter travels over.
type Method string

const (
	MethodElectronic Method = "electronic"
	MethodPostal     Method = "postal"
	MethodFax        Method = "fax"
)

// Valid reports whether m names a supported transport.
func (m Method) Valid() bool {
	switch m {
	case MethodElectronic, MethodPostal, MethodFax:
		return true
	}
	return false
}

// Letter is the transport-ready view of a composed draft.
type Letter struct {
	ID               string
	Subject          string
	Body             string
	Recipient        string
	RecipientAddress string
}

// Receipt is the proof of a dispatched letter.
type Receipt struct {
	DeliveryID        string
	Method            Method
	SentAt            time.Time
	EstimatedDelivery time.Time
}

// Sender dispatches a letter over one transport. Implementations must be safe
// for concurrent use.
type Sender interface {
	Send(ctx context.Context, letter Letter, method Method) (Receipt, error)
}
