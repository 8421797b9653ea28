// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/private"
	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/public"
	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	Chain *chain.Chain
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		Chain: cfg.Chain,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodPost, version, "/wallets", pbl.CreateWallet)
	app.Handle(http.MethodGet, version, "/wallets/:address", pbl.QueryWallet)
	app.Handle(http.MethodGet, version, "/wallets/:address/tx", pbl.WalletTransactions)
	app.Handle(http.MethodPost, version, "/tx", pbl.AddTransaction)
	app.Handle(http.MethodPost, version, "/tx/validate", pbl.ValidateTransaction)
	app.Handle(http.MethodGet, version, "/tx/list", pbl.Transactions)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
	app.Handle(http.MethodGet, version, "/tx/:hash", pbl.QueryTransaction)
	app.Handle(http.MethodGet, version, "/tx/:hash/proof", pbl.TransactionProof)
	app.Handle(http.MethodGet, version, "/blocks/list/:from/:to", pbl.BlocksByNumber)
	app.Handle(http.MethodGet, version, "/blocks/last", pbl.LastBlock)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		Chain: cfg.Chain,
	}

	app.Handle(http.MethodPost, version, "/mining/mine", prv.MineBlock)
	app.Handle(http.MethodGet, version, "/config", prv.QueryConfig)
	app.Handle(http.MethodPut, version, "/config/difficulty", prv.UpdateDifficulty)
	app.Handle(http.MethodPut, version, "/config/reward", prv.UpdateReward)
	app.Handle(http.MethodPut, version, "/config/fee", prv.UpdateFee)
	app.Handle(http.MethodPut, version, "/config/beneficiary", prv.UpdateBeneficiary)
}
