package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/flexidiet/internal/auth"
)

// HandleWebSocket upgrades an authenticated request and runs it as a Hub
// client scoped to the caller's email.
func HandleWebSocket(hub *Hub, originPatterns []string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := auth.Email(r.Context())
		if owner == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			logger.Warn("websocket accept", "error", err, "owner", owner)
			return
		}

		logger.Debug("websocket connected", "owner", owner)
		NewClient(hub, conn, owner).Run(r.Context())
		logger.Debug("websocket disconnected", "owner", owner)
	}
}
