// Package server implements the HTTP server, middleware, and request handlers for the application.
package server

import (
	"net/http"

	"github.com/mcraftr/craftd/internal/catalog"
	"github.com/mcraftr/craftd/internal/config"
	"github.com/mcraftr/craftd/internal/gateway"
	"github.com/mcraftr/craftd/internal/ratelimit"
	"github.com/mcraftr/craftd/internal/rcon"
	"github.com/mcraftr/craftd/internal/storage"
)

// New creates a new Server instance with the provided gateway, storage,
// catalog, and configuration.
func New(gw *gateway.Gateway, store *storage.Repository, cat *catalog.Catalog, cfg *config.Config) *Server {
	return &Server{
		gateway: gw,
		storage: store,
		catalog: cat,
		target: rcon.Target{
			Host:     cfg.Rcon.Host,
			Port:     cfg.Rcon.Port,
			Password: cfg.Rcon.Password,
		},
		authToken:  cfg.Server.AuthToken,
		maxBody:    cfg.Server.MaxBodySize * 1024,
		trustProxy: cfg.Server.TrustProxy,
		limiter: ratelimit.New(map[string]ratelimit.Quota{
			ratelimit.BucketHTTP: {
				Window: cfg.RateLimit.HardLimitWin,
				Count:  cfg.RateLimit.HardLimitCount,
			},
		}),
	}
}

// Run configures the HTTP routes and returns the main handler.
func (s *Server) Run() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/info", http.HandlerFunc(s.handleBuildInfo))

	api := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, s.requireAuth(h))
	}

	api("GET /api/minecraft/server-info", s.handleServerInfo)
	api("GET /api/minecraft/player", s.handlePlayerVitals)
	api("GET /api/minecraft/inventory", s.handleInventory)
	api("DELETE /api/minecraft/inventory", s.handleInventoryClear)
	api("GET /api/minecraft/effects", s.handleEffects)

	api("GET /api/minecraft/banlist", s.handleBanList)
	api("POST /api/minecraft/ban", s.handleBan)
	api("POST /api/minecraft/pardon", s.handlePardon)
	api("POST /api/minecraft/kick", s.handleKick)
	api("POST /api/minecraft/op", s.handleOp)
	api("GET /api/minecraft/whitelist", s.handleWhitelist)
	api("POST /api/minecraft/whitelist", s.handleWhitelistChange)

	api("GET /api/minecraft/gamerule", s.handleGamerules)
	api("POST /api/minecraft/gamerule", s.handleSetGamerule)
	api("GET /api/minecraft/difficulty", s.handleDifficulty)
	api("POST /api/minecraft/difficulty", s.handleSetDifficulty)
	api("POST /api/minecraft/server-ctrl", s.handleServerControl)
	api("POST /api/minecraft/cmd", s.handleRawCommand)
	api("POST /api/minecraft/rcon", s.handleQuick)

	api("POST /api/minecraft/broadcast", s.handleBroadcast)
	api("POST /api/minecraft/msg", s.handleWhisper)
	api("POST /api/minecraft/tp", s.handleTeleport)
	api("POST /api/minecraft/tploc", s.handleTeleportCoords)
	api("POST /api/minecraft/give", s.handleGive)
	api("GET /api/minecraft/kit", s.handleKits)
	api("POST /api/minecraft/kit", s.handleKit)

	api("PUT /api/server", s.handleTestConnection)
	api("GET /api/audit", s.handleAuditLog)
	api("GET /api/minecraft/chat-log", s.handleChatLog)

	return s.logRequests(s.rateLimit(mux))
}
