// SPDX-License-Identifier: Apache-2.0

package http

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/utils"
	"github.com/costhook/costhook/models"
)

// listCosts returns the caller's cost records, filtered by the optional
// query parameters:
//
//	GET /api/v1/costs?provider_id=&provider_type=&start_date=&end_date=
//
// Dates accept either a calendar day ("2026-01-31") or a full RFC 3339
// timestamp. Unparsable parameters yield 422; filters that parse but point
// at nothing (e.g. a foreign provider id) yield an empty list.
func (h *Handler) listCosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	profileID, ok := utils.GetProfileIDFromContext(ctx)
	if !ok {
		log.Error().Msg("profile id missing from authenticated request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filters, err := parseCostFilters(r.URL.Query())
	if err != nil {
		log.Err(err).Msg("cost filters failed to parse")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := h.validator.Validate(ctx, filters); err != nil {
		log.Err(err).Msg("cost filters failed validation")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	records, err := h.services.CostService.List(ctx, profileID, filters)
	if err != nil {
		log.Err(err).Msg("cost record listing failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

// parseCostFilters converts raw query parameters into typed cost filters.
// Absent parameters stay nil; present ones must parse.
func parseCostFilters(query url.Values) (models.CostFilters, error) {
	var filters models.CostFilters

	if raw := query.Get("provider_id"); raw != "" {
		providerID, err := uuid.Parse(raw)
		if err != nil {
			return models.CostFilters{}, fmt.Errorf("provider_id is not a valid UUID: %w", err)
		}
		filters.ProviderID = &providerID
	}

	if raw := query.Get("provider_type"); raw != "" {
		providerType := models.ProviderType(raw)
		filters.ProviderType = &providerType
	}

	if raw := query.Get("start_date"); raw != "" {
		startDate, err := parseDate(raw)
		if err != nil {
			return models.CostFilters{}, fmt.Errorf("start_date is not a valid date: %w", err)
		}
		filters.StartDate = &startDate
	}

	if raw := query.Get("end_date"); raw != "" {
		endDate, err := parseDate(raw)
		if err != nil {
			return models.CostFilters{}, fmt.Errorf("end_date is not a valid date: %w", err)
		}
		filters.EndDate = &endDate
	}

	return filters, nil
}

func parseDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}
