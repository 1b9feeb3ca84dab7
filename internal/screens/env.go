// Package screens holds what the TUI screens share.
package screens

import (
	"log/slog"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/reading"
	"github.com/abhisek/beautylens/internal/store"
)

// Env carries the services the screens use. Repo and Reading may be nil:
// without a store no history is kept, and without a provider no AI
// reading is offered.
type Env struct {
	Catalog       *catalog.Catalog
	Repo          store.EventRepo
	Reading       *reading.Service
	StrictOptions bool
	Logger        *slog.Logger
}
