package uuidgen

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
)

// Generator issues time-ordered (version 7) UUIDs, so ids created later
// also sort later. The blog list uses that as its tie-break.
type Generator struct{}

var _ contract.IUUIDGenerator = (*Generator)(nil)

func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

// NewUUID falls back to a random UUID if the clock sequence cannot be read.
func (g *Generator) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
