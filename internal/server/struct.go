package server

import (
	"github.com/mcraftr/craftd/internal/catalog"
	"github.com/mcraftr/craftd/internal/gateway"
	"github.com/mcraftr/craftd/internal/ratelimit"
	"github.com/mcraftr/craftd/internal/rcon"
	"github.com/mcraftr/craftd/internal/storage"
)

// Server holds the dependencies and configuration required to handle HTTP
// requests.
type Server struct {
	// gateway executes every game-server operation. It owns validation,
	// the address policy and per-caller command budgets.
	gateway *gateway.Gateway

	// storage provides read access to the audit and chat logs. Writes go
	// through the gateway.
	storage *storage.Repository

	// catalog exposes the kit definitions for the kit listing endpoint.
	catalog *catalog.Catalog

	// target is the configured game server every request operates on,
	// except the connection test which carries its own.
	target rcon.Target

	// authToken is the secret token required on every API endpoint.
	authToken string

	// maxBody is the maximum allowed request body size in bytes.
	maxBody int64

	// limiter enforces the per-IP hard request budget before any handler
	// runs. Same limiter type the gateway uses for command budgets, on
	// its own bucket.
	limiter *ratelimit.Limiter

	// trustProxy indicates whether X-Forwarded-For style headers are
	// trusted when resolving the client address.
	trustProxy bool
}
