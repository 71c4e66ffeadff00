// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/utils"
	"github.com/costhook/costhook/models"
)

// getMyProfile returns the caller's own profile. The auth middleware has
// already resolved (or created) it, so this lookup cannot miss.
func (h *Handler) getMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		log.Error().Msg("claims missing from authenticated request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	profile, err := h.services.ProfileService.GetOrCreate(ctx, claims)
	if err != nil {
		log.Err(err).Msg("profile lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

// updateMyProfile applies a partial update to the caller's own profile.
func (h *Handler) updateMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	profileID, ok := utils.GetProfileIDFromContext(ctx)
	if !ok {
		log.Error().Msg("profile id missing from authenticated request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var update models.UserProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}

	if err := h.validator.Validate(ctx, update); err != nil {
		log.Err(err).Msg("profile update failed validation")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	updated, err := h.services.ProfileService.Update(ctx, profileID, update)
	if err != nil {
		log.Err(err).Msg("profile update failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}
