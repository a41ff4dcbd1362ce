// Package board keeps a local copy of the project pipeline and syncs card
// moves with the server optimistically.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Marga-Ghale/creativa-crm/internal/apiclient"
	"github.com/Marga-Ghale/creativa-crm/internal/logger"
	"github.com/Marga-Ghale/creativa-crm/internal/models"
	"github.com/Marga-Ghale/creativa-crm/internal/socket"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownProject = errors.New("project not on board")
	ErrInvalidStatus  = errors.New("invalid status")
)

// API is the part of apiclient.Client the board needs.
type API interface {
	ListProjects(ctx context.Context, status types.ProjectStatus) ([]models.ProjectListItem, error)
	UpdateProjectStatus(ctx context.Context, id string, status types.ProjectStatus) (*models.ProjectDetailResponse, error)
}

// Column is one pipeline stage and its cards in server order.
type Column struct {
	Status   types.ProjectStatus
	Label    string
	Projects []models.ProjectListItem
}

type Board struct {
	api API
	log zerolog.Logger

	mu       sync.RWMutex
	projects []models.ProjectListItem
	lastErr  error

	pending sync.WaitGroup
}

func New(api API) *Board {
	return &Board{api: api, log: logger.With("board")}
}

// Load replaces the local state with the server's.
func (b *Board) Load(ctx context.Context) error {
	projects, err := b.api.ListProjects(ctx, "")
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	b.mu.Lock()
	b.projects = projects
	b.mu.Unlock()
	return nil
}

// Columns groups the cards by stage, always in pipeline order and always
// with all four columns.
func (b *Board) Columns() []Column {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cols := make([]Column, len(types.ProjectStatuses))
	for i, s := range types.ProjectStatuses {
		cols[i] = Column{Status: s, Label: s.Label(), Projects: []models.ProjectListItem{}}
	}
	for _, p := range b.projects {
		if i := p.Status.Index(); i >= 0 {
			cols[i].Projects = append(cols[i].Projects, p)
		}
	}
	return cols
}

// Project returns the local copy of one card.
func (b *Board) Project(id string) (models.ProjectListItem, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, p := range b.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.ProjectListItem{}, false
}

// Move drops a card on another column. The local state changes at once and
// the update is sent in the background; if the server rejects it the whole
// board is reloaded. Cancelling ctx after Move returns does not abort the
// sync. Moving a card onto its own column does nothing.
func (b *Board) Move(ctx context.Context, id string, to types.ProjectStatus) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}

	b.mu.Lock()
	idx := -1
	for i := range b.projects {
		if b.projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return ErrUnknownProject
	}
	if b.projects[idx].Status == to {
		b.mu.Unlock()
		return nil
	}
	b.projects[idx].Status = to
	b.mu.Unlock()

	// The sync outlives the caller: a cancelled ctx must not strand the card
	// in a column the server never accepted.
	ctx = context.WithoutCancel(ctx)
	b.pending.Add(1)
	go func() {
		defer b.pending.Done()

		if _, err := b.api.UpdateProjectStatus(ctx, id, to); err != nil {
			b.log.Warn().Err(err).Str("project", id).Str("status", string(to)).Msg("move rejected, reloading")
			b.setErr(err)
			if err := b.Load(ctx); err != nil {
				b.log.Error().Err(err).Msg("reload after failed move")
				b.setErr(err)
			}
		}
	}()
	return nil
}

// Wait blocks until every in-flight move has settled.
func (b *Board) Wait() {
	b.pending.Wait()
}

// Err returns the most recent background sync error.
func (b *Board) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastErr
}

func (b *Board) setErr(err error) {
	b.mu.Lock()
	b.lastErr = err
	b.mu.Unlock()
}

// Watch reloads the board whenever the server reports a project change.
// onReload, if set, runs after each successful reload. Returns when events
// closes or ctx is done.
func (b *Board) Watch(ctx context.Context, events <-chan apiclient.Event, onReload func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !isProjectEvent(ev.Type) {
				continue
			}
			if err := b.Load(ctx); err != nil {
				b.log.Warn().Err(err).Str("event", string(ev.Type)).Msg("reload after event")
				continue
			}
			if onReload != nil {
				onReload()
			}
		}
	}
}

func isProjectEvent(t socket.MessageType) bool {
	switch t {
	case socket.MessageProjectCreated, socket.MessageProjectUpdated,
		socket.MessageProjectStatusChanged, socket.MessageProjectDeleted:
		return true
	}
	return false
}
