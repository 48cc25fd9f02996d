package paygate

import (
	"errors"
	"fmt"
	"time"

	"github.com/coinbase/x402/go/pkg/types"
)

// ErrSettlementPending is returned by Wait when the bounded budget elapses
// before the facilitator confirms settlement. The payment proof has already
// been verified at that point; callers decide whether to render optimistically.
var ErrSettlementPending = errors.New("settlement pending")

// SettleFailedError reports a settlement the facilitator explicitly rejected.
type SettleFailedError struct {
	Reason string
}

func (e *SettleFailedError) Error() string {
	if e.Reason == "" {
		return "settlement failed"
	}
	return fmt.Sprintf("settlement failed: %s", e.Reason)
}

// Settlement is the completion handle for an in-flight settlement. The
// settlement itself runs to completion regardless of whether anyone waits on
// the handle or the client is still connected.
type Settlement struct {
	done chan struct{}
	resp *types.SettleResponse
	err  error
}

func newSettlement() *Settlement {
	return &Settlement{done: make(chan struct{})}
}

// CompletedSettlement builds an already-resolved handle. Used for stubbing
// gates in handler tests.
func CompletedSettlement(resp *types.SettleResponse, err error) *Settlement {
	s := newSettlement()
	s.complete(resp, err)
	return s
}

func (s *Settlement) complete(resp *types.SettleResponse, err error) {
	s.resp = resp
	s.err = err
	close(s.done)
}

// Done is closed once the settlement attempt has finished, whatever the outcome.
func (s *Settlement) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the settlement completes or the budget elapses. A nil
// error means the facilitator confirmed settlement and the response carries
// the transaction hash.
func (s *Settlement) Wait(budget time.Duration) (*types.SettleResponse, error) {
	select {
	case <-s.done:
	case <-time.After(budget):
		return nil, ErrSettlementPending
	}

	if s.err != nil {
		return nil, s.err
	}
	if !s.resp.Success {
		reason := ""
		if s.resp.ErrorReason != nil {
			reason = *s.resp.ErrorReason
		}
		return nil, &SettleFailedError{Reason: reason}
	}

	return s.resp, nil
}
