package server

import (
	"net/http"

	"github.com/mcraftr/craftd/internal/gateway"
	"github.com/mcraftr/craftd/internal/policy"
	"github.com/mcraftr/craftd/internal/rcon"
)

// handleBan bans a player by name and optionally by IP.
// Body: {"player": "Steve", "reason": "griefing", "banIp": true}
func (s *Server) handleBan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
		Reason string `json:"reason"`
		BanIP  bool   `json:"banIp"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.Ban(s.target, s.caller(r), gateway.BanRequest{
		Player: req.Player,
		Reason: req.Reason,
		BanIP:  req.BanIP,
	})
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handlePardon lifts a name ban and optionally the matching IP ban.
// Body: {"player": "Steve", "pardonIp": true}
func (s *Server) handlePardon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player   string `json:"player"`
		PardonIP bool   `json:"pardonIp"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.Pardon(s.target, s.caller(r), gateway.PardonRequest{
		Player:   req.Player,
		PardonIP: req.PardonIP,
	})
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleKick disconnects a player.
// Body: {"player": "Steve", "reason": "afk"}
func (s *Server) handleKick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
		Reason string `json:"reason"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.Kick(s.target, s.caller(r), req.Player, req.Reason)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleOp grants or revokes operator status.
// Body: {"player": "Steve", "action": "op"}
func (s *Server) handleOp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
		Action string `json:"action"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.OpPlayer(s.target, s.caller(r), req.Player, req.Action)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleWhitelistChange adds or removes a whitelist entry.
// Body: {"player": "Steve", "action": "add"}
func (s *Server) handleWhitelistChange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
		Action string `json:"action"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.WhitelistChange(s.target, s.caller(r), req.Player, req.Action)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleSetGamerule toggles a managed boolean gamerule.
// Body: {"rule": "keepInventory", "value": "true"}
func (s *Server) handleSetGamerule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rule  string `json:"rule"`
		Value string `json:"value"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.SetGamerule(s.target, s.caller(r), req.Rule, req.Value)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleSetDifficulty changes the world difficulty.
// Body: {"difficulty": "hard"}
func (s *Server) handleSetDifficulty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Difficulty string `json:"difficulty"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.SetDifficulty(s.target, s.caller(r), req.Difficulty)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleServerControl runs an allow-listed lifecycle command.
// Body: {"command": "save-all"}
func (s *Server) handleServerControl(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Command string `json:"command"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.ServerControl(s.target, s.caller(r), req.Command)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleRawCommand runs an arbitrary console command.
// Body: {"command": "list"}
func (s *Server) handleRawCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Command string `json:"command"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.RawCommand(s.target, s.caller(r), req.Command)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleQuick executes a one-click action.
// Body: {"action": "heal", "player": "Steve"}
func (s *Server) handleQuick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
		Player string `json:"player"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	cmd, ok := gateway.ParseQuickCommand(req.Action)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown action")
		return
	}

	res, err := s.gateway.Quick(s.target, s.caller(r), cmd, req.Player)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleBroadcast sends a message to every player.
// Body: {"message": "Server restarting in 5 minutes"}
func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.Broadcast(s.target, s.caller(r), req.Message)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleWhisper sends a private message to one player.
// Body: {"player": "Steve", "message": "hello"}
func (s *Server) handleWhisper(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player  string `json:"player"`
		Message string `json:"message"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.Whisper(s.target, s.caller(r), req.Player, req.Message)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleTeleport moves one player to another.
// Body: {"from": "Steve", "to": "Alex"}
func (s *Server) handleTeleport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.Teleport(s.target, s.caller(r), req.From, req.To)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleTeleportCoords moves a player to absolute coordinates.
// Body: {"player": "Steve", "x": 100, "y": 64, "z": -200}
func (s *Server) handleTeleportCoords(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string  `json:"player"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Z      float64 `json:"z"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.TeleportCoords(s.target, s.caller(r), req.Player, req.X, req.Y, req.Z)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleGive hands a player a stack of an allow-listed item.
// Body: {"player": "Steve", "item": "diamond", "count": 16}
func (s *Server) handleGive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
		Item   string `json:"item"`
		Count  int    `json:"count"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.Give(s.target, s.caller(r), req.Player, req.Item, req.Count)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleKit issues every item of a kit to a player.
// Body: {"player": "Steve", "kit": "starter"}
func (s *Server) handleKit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
		Kit    string `json:"kit"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.Kit(s.target, s.caller(r), req.Player, req.Kit)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleInventoryClear removes an item from a player's inventory.
// Body: {"player": "Steve", "item": "minecraft:dirt", "count": 32}
func (s *Server) handleInventoryClear(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
		Item   string `json:"item"`
		Count  int    `json:"count"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.gateway.ClearItem(s.target, s.caller(r), req.Player, req.Item, req.Count)
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleTestConnection probes a candidate target supplied in the body, the
// one route where the target does not come from configuration.
// Body: {"host": "mc.example.com", "port": "25575", "password": "secret"}
func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		Password string `json:"password"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Host == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing host or password")
		return
	}

	target := rcon.Target{
		Host:     req.Host,
		Port:     policy.ParsePort(req.Port),
		Password: req.Password,
	}

	res, err := s.gateway.TestConnection(target, s.caller(r))
	if err != nil {
		gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
