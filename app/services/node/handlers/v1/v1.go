// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/powchain/app/services/node/handlers/v1/public"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/events"
	"github.com/ardanlabs/powchain/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes. The ledger routes are
// also bound without a version so older nodes and clients can reach them.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/mining/signal", pbl.SignalMining)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
	app.Handle(http.MethodGet, version, "/nodes/list", pbl.KnownPeers)
	app.Handle(http.MethodGet, version, "/blocks/list/:account", pbl.BlocksByAccount)

	for _, group := range []string{version, ""} {
		app.Handle(http.MethodGet, group, "/mine", pbl.Mine)
		app.Handle(http.MethodPost, group, "/transactions/new", pbl.SubmitTransaction)
		app.Handle(http.MethodGet, group, "/chain", pbl.Chain)
		app.Handle(http.MethodPost, group, "/nodes/register", pbl.RegisterNodes)
		app.Handle(http.MethodGet, group, "/nodes/resolve", pbl.Resolve)
	}
}
