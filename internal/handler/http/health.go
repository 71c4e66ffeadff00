package http

import (
	"net/http"

	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/utils"
)

// health reports liveness. No authentication, no dependencies touched.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// healthProtected is the authenticated variant of the health check. It
// echoes the verified subject so clients can confirm their token end to end.
func (h *Handler) healthProtected(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("claims missing from authenticated request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]string{
		"status":       "ok",
		"auth_user_id": claims.AuthUserID.String(),
	}, http.StatusOK)
}
