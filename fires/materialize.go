package fires

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/c360studio/tacsym/selection"
	"github.com/c360studio/tacsym/symbology"
)

// Renderer is the out-of-process symbol rendering surface (the globe
// engine). The materializer resolves each record's symbol code against the
// catalog and hands the result over; how it becomes pixels is not this
// package's concern.
type Renderer interface {
	// UpdateSymbol creates or refreshes the map symbol for a record.
	UpdateSymbol(record Record, sel selection.Selection) error

	// RemoveSymbol drops the map symbol for a record that no longer exists.
	RemoveSymbol(id string) error
}

// Materializer keeps a renderer in sync with the fire-record service. It
// remembers which records it has rendered, so it must live across sync
// passes; the catalog is passed per pass because it may be reloaded
// between them.
type Materializer struct {
	client   *Client
	renderer Renderer
	logger   *slog.Logger

	// rendered tracks record IDs currently on the renderer so removed
	// records can be dropped on the next sync.
	rendered map[string]bool
}

// MaterializerOption configures a Materializer.
type MaterializerOption func(*Materializer)

// WithMaterializerLogger sets the logger.
func WithMaterializerLogger(logger *slog.Logger) MaterializerOption {
	return func(m *Materializer) {
		m.logger = logger
	}
}

// NewMaterializer creates a materializer that renders the service's fire
// records through the given renderer.
func NewMaterializer(client *Client, renderer Renderer, opts ...MaterializerOption) *Materializer {
	m := &Materializer{
		client:   client,
		renderer: renderer,
		logger:   slog.Default(),
		rendered: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Sync fetches the current record set and reconciles the renderer with it:
// every record is decoded and updated, symbols for vanished records are
// removed. Records whose symbol code cannot be decoded render with an empty
// selection (encode-time defaults) rather than failing the sync; only the
// fetch itself or a renderer failure is an error. Returns the number of
// records rendered.
func (m *Materializer) Sync(ctx context.Context, catalog *symbology.Catalog) (int, error) {
	records, err := m.client.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("materialize fires: %w", err)
	}

	seen := make(map[string]bool, len(records))
	for _, record := range records {
		seen[record.ID] = true

		sess := selection.NewSession(catalog)
		if err := sess.Decode(record.SymbolCode); err != nil {
			m.logger.Warn("Fire record has malformed symbol code, rendering defaults",
				"id", record.ID,
				"symbol_code", record.SymbolCode,
				"error", err)
		}
		if err := m.renderer.UpdateSymbol(record, sess.Selection()); err != nil {
			return 0, fmt.Errorf("materialize fire %s: %w", record.ID, err)
		}
		m.rendered[record.ID] = true
	}

	for id := range m.rendered {
		if seen[id] {
			continue
		}
		if err := m.renderer.RemoveSymbol(id); err != nil {
			return 0, fmt.Errorf("remove fire %s: %w", id, err)
		}
		delete(m.rendered, id)
	}

	return len(records), nil
}
