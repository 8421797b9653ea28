// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	v1 "github.com/ardanlabs/ledger/business/web/v1"
	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/validate"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Default paging values when the query string does not provide them.
const (
	defaultPage = 0
	defaultSize = 10
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Chain *chain.Chain
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// The upgrade already wrote the response.
	web.SetStatusCode(ctx, http.StatusSwitchingProtocols)

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// CreateWallet registers a new wallet for an email.
func (h Handlers) CreateWallet(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var nw NewWallet
	if err := web.Decode(r, &nw); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := validate.Check(nw); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	address, err := h.Chain.CreateWallet(nw.Email)
	if err != nil {
		return err
	}

	h.Log.Infow("create wallet", "traceid", web.GetTraceID(ctx), "address", address)

	return web.Respond(ctx, w, WalletCreated{Address: address}, http.StatusCreated)
}

// QueryWallet returns the wallet for the address.
func (h Handlers) QueryWallet(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address, err := database.ToAddress(web.Param(r, "address"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	wallet, err := h.Chain.Wallet(address)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, wallet, http.StatusOK)
}

// WalletTransactions returns a page of the confirmed transactions sent or
// received by a wallet.
func (h Handlers) WalletTransactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address, err := database.ToAddress(web.Param(r, "address"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	page, size, err := paging(r)
	if err != nil {
		return err
	}

	trans, err := h.Chain.GetWalletTransactions(address, page, size)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// AddTransaction submits a new transaction to the mempool.
func (h Handlers) AddTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var nt NewTx
	if err := web.Decode(r, &nt); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := validate.Check(nt); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	tx, err := h.Chain.AddTransaction(nt.From, nt.To, nt.Amount)
	if err != nil {
		return err
	}

	h.Log.Infow("add tran", "traceid", web.GetTraceID(ctx), "hash", tx.Hash, "from", tx.From, "to", tx.To, "amount", tx.Amount, "fee", tx.Fee)

	return web.Respond(ctx, w, tx, http.StatusCreated)
}

// ValidateTransaction checks the sender could afford the amount plus fee
// without submitting a transaction.
func (h Handlers) ValidateTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var ct CheckTx
	if err := web.Decode(r, &ct); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := validate.Check(ct); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	if err := h.Chain.ValidateTransaction(ct.From, ct.Amount); err != nil {
		return err
	}

	return web.Respond(ctx, w, Status{Status: "valid"}, http.StatusOK)
}

// Transactions returns a page of the confirmed transactions.
func (h Handlers) Transactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	page, size, err := paging(r)
	if err != nil {
		return err
	}

	trans, err := h.Chain.GetTransactions(page, size)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// QueryTransaction returns the confirmed transaction for the hash.
func (h Handlers) QueryTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	tx, err := h.Chain.GetTransaction(web.Param(r, "hash"))
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, tx, http.StatusOK)
}

// TransactionProof returns the merkle proof of a confirmed transaction.
func (h Handlers) TransactionProof(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	proof, err := h.Chain.GetTransactionProof(web.Param(r, "hash"))
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, proof, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Chain.Mempool(), http.StatusOK)
}

// BlocksByNumber returns all the blocks based on the specified to/from values.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fromStr := web.Param(r, "from")
	if fromStr == "latest" || fromStr == "" {
		fromStr = fmt.Sprintf("%d", chain.QueryLatest)
	}

	toStr := web.Param(r, "to")
	if toStr == "latest" || toStr == "" {
		toStr = fmt.Sprintf("%d", chain.QueryLatest)
	}

	from, err := strconv.ParseUint(fromStr, 10, 64)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}
	to, err := strconv.ParseUint(toStr, 10, 64)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if from > to {
		return v1.NewRequestError(errors.New("from greater than to"), http.StatusBadRequest)
	}

	blocks := h.Chain.Blocks(from, to)

	blockData := make([]database.BlockData, len(blocks))
	for i, block := range blocks {
		blockData[i] = database.NewBlockData(block)
	}

	return web.Respond(ctx, w, blockData, http.StatusOK)
}

// LastBlock returns the latest block in the chain.
func (h Handlers) LastBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, database.NewBlockData(h.Chain.LatestBlock()), http.StatusOK)
}

// =============================================================================

// paging reads the page and size query parameters.
func paging(r *http.Request) (uint64, uint64, error) {
	page := uint64(defaultPage)
	size := uint64(defaultSize)

	values := r.URL.Query()

	if p := values.Get("page"); p != "" {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return 0, 0, v1.NewRequestError(fmt.Errorf("invalid page %q: %w", p, chain.ErrInvalidPagination), http.StatusBadRequest)
		}
		page = n
	}

	if s := values.Get("size"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, 0, v1.NewRequestError(fmt.Errorf("invalid size %q: %w", s, chain.ErrInvalidPagination), http.StatusBadRequest)
		}
		size = n
	}

	return page, size, nil
}
