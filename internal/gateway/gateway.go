package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtroode/userdesk-server/internal/model"
)

var _ model.UserStore = (*Gateway)(nil)

// Opener produces a connected store.
type Opener func(ctx context.Context) (model.UserStore, error)

// Gateway owns the process-wide store handle. It is safe for concurrent
// use once Connect has returned.
type Gateway struct {
	open Opener

	mu    sync.RWMutex
	store model.UserStore
}

func New(open Opener) *Gateway {
	return &Gateway{open: open}
}

// Connect opens the store and checks it answers a ping. Calling it on an
// already connected gateway is a no-op.
func (g *Gateway) Connect(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.store != nil {
		return nil
	}

	store, err := g.open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to ping store: %w", err)
	}

	g.store = store

	return nil
}

// Handle returns the live store or ErrNotInitialized.
func (g *Gateway) Handle() (model.UserStore, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.store == nil {
		return nil, model.ErrNotInitialized
	}

	return g.store, nil
}

func (g *Gateway) Insert(ctx context.Context, user model.User) (string, error) {
	s, err := g.Handle()
	if err != nil {
		return "", err
	}
	return s.Insert(ctx, user)
}

func (g *Gateway) FindOne(ctx context.Context, storeID string) (model.User, error) {
	s, err := g.Handle()
	if err != nil {
		return model.User{}, err
	}
	return s.FindOne(ctx, storeID)
}

func (g *Gateway) FindAll(ctx context.Context) ([]model.User, error) {
	s, err := g.Handle()
	if err != nil {
		return nil, err
	}
	return s.FindAll(ctx)
}

func (g *Gateway) Replace(ctx context.Context, storeID string, profile model.Profile) (bool, error) {
	s, err := g.Handle()
	if err != nil {
		return false, err
	}
	return s.Replace(ctx, storeID, profile)
}

func (g *Gateway) Remove(ctx context.Context, storeID string) (bool, error) {
	s, err := g.Handle()
	if err != nil {
		return false, err
	}
	return s.Remove(ctx, storeID)
}

func (g *Gateway) Ping(ctx context.Context) error {
	s, err := g.Handle()
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

// Close releases the store. The gateway can be connected again afterwards.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.store == nil {
		return nil
	}

	err := g.store.Close()
	g.store = nil
	if err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}

	return nil
}
