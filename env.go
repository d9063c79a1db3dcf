package repwizard

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Env carries what the builders share: the field catalog, a logger and the
// generator for prompt placeholder ids. It is handed to each builder when a
// step is initialized instead of living in package state.
type Env struct {
	Catalog *Catalog
	Logger  *zap.SugaredLogger
	NewID   func() string
}

func NewEnv(cat *Catalog, logger *zap.SugaredLogger) *Env {
	return &Env{
		Catalog: cat,
		Logger:  logger,
		NewID:   uuid.NewString,
	}
}
