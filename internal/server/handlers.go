package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mcraftr/craftd/internal/gateway"
	"github.com/mcraftr/craftd/internal/storage"
	"github.com/mcraftr/craftd/internal/vars"
	"github.com/rs/zerolog/log"
)

// caller resolves the identity the gateway budgets and audits against. No
// account system: the client IP is the caller.
func (s *Server) caller(r *http.Request) string {
	return realIP(r, s.trustProxy)
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody reads a size-capped JSON request body into dst, answering 400
// on malformed input.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	return true
}

// gatewayError maps a synchronous gateway rejection to its HTTP status.
func gatewayError(w http.ResponseWriter, err error) {
	var verr gateway.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, gateway.ErrBlockedAddress):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, gateway.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		log.Error().Err(err).Msg("Gateway operation failed")
		writeError(w, http.StatusInternalServerError, "Internal error")
	}
}

// queryLimit parses a ?limit= parameter, bounded to [1, 500].
func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > 500 {
		n = 500
	}
	return n
}

// handleBuildInfo returns build metadata. The only unauthenticated route.
func (s *Server) handleBuildInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, vars.Ver())
}

// handleServerInfo returns the status snapshot of the configured server.
func (s *Server) handleServerInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.gateway.Info(s.target, s.caller(r))
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// handlePlayerVitals returns live stats for one player.
// Query params: ?name=Steve
func (s *Server) handlePlayerVitals(w http.ResponseWriter, r *http.Request) {
	vitals, err := s.gateway.Vitals(s.target, s.caller(r), r.URL.Query().Get("name"))
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, vitals)
}

// handleInventory returns a player's occupied inventory slots.
// Query params: ?player=Steve
func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := s.gateway.Inventory(s.target, s.caller(r), r.URL.Query().Get("player"))
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

// handleEffects returns the dashboard-applied effects active on a player.
// Query params: ?player=Steve
func (s *Server) handleEffects(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.Effects(s.target, s.caller(r), r.URL.Query().Get("player"))
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleBanList returns the parsed ban list.
func (s *Server) handleBanList(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.BanList(s.target, s.caller(r))
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleWhitelist returns the parsed whitelist.
func (s *Server) handleWhitelist(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.Whitelist(s.target, s.caller(r))
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleGamerules returns the current value of every managed gamerule.
func (s *Server) handleGamerules(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.Gamerules(s.target, s.caller(r))
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleDifficulty returns the current world difficulty.
func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.Difficulty(s.target, s.caller(r))
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleKits returns the kit catalog.
func (s *Server) handleKits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"kits": s.catalog.Kits()})
}

// handleAuditLog returns recent audit entries, newest first.
// Query params: ?limit=50
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.storage.AuditLog(queryLimit(r, 50))
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch audit log")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if entries == nil {
		entries = []storage.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// handleChatLog returns recent broadcast and whisper entries, newest first.
// Query params: ?limit=50
func (s *Server) handleChatLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.storage.ChatLog(queryLimit(r, 50))
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch chat log")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if entries == nil {
		entries = []storage.ChatEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
