// Package private maintains the group of handlers for operator access.
package private

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	v1 "github.com/ardanlabs/ledger/business/web/v1"
	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/validate"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of operator endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Chain *chain.Chain
}

// MineBlock mines the pending transactions into a new block. Any background
// mining is cancelled first so the two do not compete for the same pool.
func (h Handlers) MineBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.Chain.Worker != nil {
		done := h.Chain.Worker.SignalCancelMining()
		defer done()
	}

	block, err := h.Chain.MineNewBlock(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return v1.NewRequestError(err, http.StatusRequestTimeout)
		}
		return err
	}

	h.Log.Infow("mine block", "traceid", web.GetTraceID(ctx), "number", block.Header.Number, "hash", block.Hash(), "trans", len(block.Values()))

	return web.Respond(ctx, w, database.NewBlockData(block), http.StatusCreated)
}

// QueryConfig returns the current chain settings.
func (h Handlers) QueryConfig(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Chain.Config(), http.StatusOK)
}

// UpdateDifficulty changes the difficulty for blocks mined from now on.
func (h Handlers) UpdateDifficulty(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var d Difficulty
	if err := web.Decode(r, &d); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := validate.Check(d); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	if err := h.Chain.UpdateDifficulty(d.Difficulty); err != nil {
		return err
	}

	return web.Respond(ctx, w, h.Chain.Config(), http.StatusOK)
}

// UpdateReward changes the reward for blocks mined from now on.
func (h Handlers) UpdateReward(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var rw Reward
	if err := web.Decode(r, &rw); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := h.Chain.UpdateReward(rw.Reward); err != nil {
		return err
	}

	return web.Respond(ctx, w, h.Chain.Config(), http.StatusOK)
}

// UpdateFee changes the fee rate for transactions accepted from now on.
func (h Handlers) UpdateFee(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var f Fee
	if err := web.Decode(r, &f); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := h.Chain.UpdateFee(f.Fee); err != nil {
		return err
	}

	return web.Respond(ctx, w, h.Chain.Config(), http.StatusOK)
}

// UpdateBeneficiary changes the wallet receiving rewards and fees.
func (h Handlers) UpdateBeneficiary(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var b Beneficiary
	if err := web.Decode(r, &b); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := validate.Check(b); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	if err := h.Chain.UpdateBeneficiary(b.Beneficiary); err != nil {
		return err
	}

	return web.Respond(ctx, w, h.Chain.Config(), http.StatusOK)
}
