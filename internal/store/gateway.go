package store

import (
	"context"

	"github.com/velichenko/typesprint/internal/game"
	"github.com/velichenko/typesprint/internal/model"
)

// Gateway adapts a Store to the engine's persistence port. The
// engine absorbs any errors these methods return, so a broken
// database degrades to an unsaved profile rather than a crash.
type Gateway struct {
	ctx   context.Context
	store *Store
}

var _ game.ProfileGateway = (*Gateway)(nil)

// NewGateway binds a store to the given context for engine calls.
func NewGateway(ctx context.Context, store *Store) *Gateway {
	return &Gateway{ctx: ctx, store: store}
}

// Load fetches the stored profile.
func (g *Gateway) Load() (model.Profile, error) {
	return g.store.LoadProfile(g.ctx)
}

// Save upserts the profile.
func (g *Gateway) Save(p model.Profile) error {
	return g.store.SaveProfile(g.ctx, p)
}

// Record stores a finished session.
func (g *Gateway) Record(rec model.SessionRecord) error {
	_, err := g.store.InsertRecord(g.ctx, rec)
	return err
}
