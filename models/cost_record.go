package models

import (
	"time"

	"github.com/google/uuid"
)

// CostRecord is one billing line item attributed to a provider over a period.
//
// Ownership is transitive: a record belongs to whoever owns its provider.
// There is no user id column on this entity; every query resolves ownership
// through a join to the providers table.
type CostRecord struct {
	ID         uuid.UUID `json:"id"`
	ProviderID uuid.UUID `json:"provider_id"`

	// Amount is the billed amount. Currency is implicit (provider-native).
	Amount float64 `json:"amount"`

	// Service is the vendor-side service name the line item is for
	// (e.g. "gpt-4o", "bandwidth").
	Service string `json:"service"`

	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// MetadataJSON is opaque provider-specific detail, stored as raw JSON
	// text. Nil when the provider supplied none.
	MetadataJSON *string `json:"metadata_json"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the CostRecord model.
func (CostRecord) TableName() string {
	return "cost_records"
}

// CostRecordCreate is the input shape for inserting a billing line item,
// used by sync tooling when importing vendor invoices.
type CostRecordCreate struct {
	ProviderID   uuid.UUID `json:"provider_id"`
	Amount       float64   `json:"amount"`
	Service      string    `json:"service"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
	MetadataJSON *string   `json:"metadata_json"`
}

// CostFilters narrows a cost-record listing. All filters are optional and
// conjunctive: every non-nil filter must match. Date bounds are inclusive.
type CostFilters struct {
	ProviderID   *uuid.UUID
	ProviderType *ProviderType
	StartDate    *time.Time
	EndDate      *time.Time
}
