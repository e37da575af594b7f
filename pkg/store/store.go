// Package store persists synteny graph records.
//
// A [Record] is one uploaded graph plus its metadata: title, description,
// genome list and gene count. Three backends implement [Store]:
//
//   - [MemoryStore]: process-local, for tests and single-instance servers
//   - [FileStore]: one JSON file per record, for the CLI
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// # Usage
//
//	st := store.NewMemoryStore()
//	rec := store.NewRecord("Sulfolobus cluster", "", g)
//	if err := st.Create(ctx, rec); err != nil {
//	    return err
//	}
//	back, err := st.Get(ctx, rec.ID)
//	if errors.Is(err, store.ErrNotFound) {
//	    // no such record
//	}
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/syntower/pkg/errors"
	"github.com/matzehuels/syntower/pkg/graph"
)

// ErrNotFound is returned when a record does not exist. It carries
// GRAPH_NOT_FOUND so the API maps it to 404.
var ErrNotFound = errors.New(errors.ErrCodeGraphNotFound, "graph not found")

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Record is a persisted graph with its metadata.
type Record struct {
	ID          string      `json:"id" bson:"_id"`
	Title       string      `json:"title" bson:"title"`
	Description string      `json:"description,omitempty" bson:"description,omitempty"`
	Genomes     []string    `json:"genomes" bson:"genomes"`
	NumGenes    int         `json:"num_genes" bson:"num_genes"`
	Domain      string      `json:"domain_name,omitempty" bson:"domain_name,omitempty"`
	Graph       graph.Graph `json:"graph" bson:"graph"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}

// Summary is a record without its graph, as returned by List.
type Summary struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Genomes     []string  `json:"genomes" bson:"genomes"`
	NumGenes    int       `json:"num_genes" bson:"num_genes"`
	Domain      string    `json:"domain_name,omitempty" bson:"domain_name,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// NewRecord builds a record for g with derived metadata. The ID and
// timestamps are assigned by [Store.Create].
func NewRecord(title, description string, g graph.Graph) *Record {
	r := &Record{Title: title, Description: description}
	r.SetGraph(g)
	return r
}

// SetGraph replaces the graph and recomputes the derived fields.
func (r *Record) SetGraph(g graph.Graph) {
	r.Graph = g
	r.Genomes = append([]string{}, g.Genomes...)
	r.NumGenes = len(g.Nodes)
	r.Domain = g.DomainName
}

// Summary drops the graph.
func (r *Record) Summary() Summary {
	return Summary{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Genomes:     r.Genomes,
		NumGenes:    r.NumGenes,
		Domain:      r.Domain,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ListOptions pages through records, newest first.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

// Store is the interface for graph record backends.
type Store interface {
	// Create assigns an ID (if empty) and timestamps, then stores rec.
	Create(ctx context.Context, rec *Record) error

	// Get returns the record with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns summaries ordered by creation time, newest first.
	List(ctx context.Context, opts ListOptions) ([]Summary, error)

	// Update replaces an existing record and bumps UpdatedAt.
	Update(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepareCreate validates rec and fills in ID and timestamps.
func prepareCreate(rec *Record, now time.Time) error {
	if rec == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil record")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if err := errors.ValidateGraphID(rec.ID); err != nil {
		return err
	}
	if err := rec.Graph.Validate(); err != nil {
		return err
	}
	if rec.Title == "" {
		rec.Title = defaultTitle(rec.Genomes)
	}
	rec.CreatedAt = now.UTC()
	rec.UpdatedAt = rec.CreatedAt
	return nil
}

func prepareUpdate(rec *Record, now time.Time) error {
	if rec == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil record")
	}
	if err := errors.ValidateGraphID(rec.ID); err != nil {
		return err
	}
	if err := rec.Graph.Validate(); err != nil {
		return err
	}
	rec.UpdatedAt = now.UTC()
	return nil
}

func defaultTitle(genomes []string) string {
	switch len(genomes) {
	case 0:
		return "untitled"
	case 1:
		return genomes[0]
	default:
		return fmt.Sprintf("%s + %d more", genomes[0], len(genomes)-1)
	}
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func errDuplicate(id string) error {
	return errors.New(errors.ErrCodeInvalidInput, "graph %s already exists", id)
}
