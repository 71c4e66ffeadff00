package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for newly created entities. Version 7
// UUIDs are preferred because they sort by creation time, which keeps
// index pages hot for created-at-descending listings.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
