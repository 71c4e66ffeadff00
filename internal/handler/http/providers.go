// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/utils"
	"github.com/costhook/costhook/models"
)

// providerIDFromURL parses the {id} path parameter. A malformed id is
// reported exactly like a missing provider: the caller learns nothing about
// which ids exist.
func providerIDFromURL(r *http.Request) (uuid.UUID, bool) {
	providerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return providerID, true
}

func (h *Handler) createProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	profileID, ok := utils.GetProfileIDFromContext(ctx)
	if !ok {
		log.Error().Msg("profile id missing from authenticated request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var create models.ProviderCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}

	if err := h.validator.Validate(ctx, create); err != nil {
		log.Err(err).Msg("provider create failed validation")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	created, err := h.services.ProviderService.Create(ctx, profileID, create)
	if err != nil {
		log.Err(err).Msg("provider creation failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listProviders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	profileID, ok := utils.GetProfileIDFromContext(ctx)
	if !ok {
		log.Error().Msg("profile id missing from authenticated request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	providers, err := h.services.ProviderService.List(ctx, profileID)
	if err != nil {
		log.Err(err).Msg("provider listing failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, providers, http.StatusOK)
}

func (h *Handler) getProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	profileID, ok := utils.GetProfileIDFromContext(ctx)
	if !ok {
		log.Error().Msg("profile id missing from authenticated request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	providerID, ok := providerIDFromURL(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	provider, err := h.services.ProviderService.Get(ctx, profileID, providerID)
	if err != nil {
		log.Err(err).Str("provider_id", providerID.String()).Msg("provider lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, provider, http.StatusOK)
}

func (h *Handler) updateProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	profileID, ok := utils.GetProfileIDFromContext(ctx)
	if !ok {
		log.Error().Msg("profile id missing from authenticated request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	providerID, ok := providerIDFromURL(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	var update models.ProviderUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}

	if err := h.validator.Validate(ctx, update); err != nil {
		log.Err(err).Msg("provider update failed validation")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	updated, err := h.services.ProviderService.Update(ctx, profileID, providerID, update)
	if err != nil {
		log.Err(err).Str("provider_id", providerID.String()).Msg("provider update failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	profileID, ok := utils.GetProfileIDFromContext(ctx)
	if !ok {
		log.Error().Msg("profile id missing from authenticated request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	providerID, ok := providerIDFromURL(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	if err := h.services.ProviderService.Delete(ctx, profileID, providerID); err != nil {
		log.Err(err).Str("provider_id", providerID.String()).Msg("provider deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
