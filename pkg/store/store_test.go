package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/syntower/pkg/errors"
	"github.com/matzehuels/syntower/pkg/graph"
)

func sampleGraph() graph.Graph {
	score := 75.0
	recip := true
	return graph.Graph{
		Genomes: []string{"E.coli", "B.subtilis"},
		Nodes: []graph.Node{
			{ID: "ec1", GenomeName: "E.coli", ProteinName: "dnaA", Direction: "plus"},
			{ID: "bs1", GenomeName: "B.subtilis", ProteinName: "dnaA", Direction: "minus"},
		},
		Links:      []graph.Link{{Source: "ec1", Target: "bs1", Score: &score, IsReciprocal: &recip}},
		DomainName: "ALL",
	}
}

// clock returns increasing timestamps so that list order is deterministic.
func clock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func testStore(t *testing.T, st Store) {
	ctx := context.Background()

	t.Run("CreateGet", func(t *testing.T) {
		rec := NewRecord("", "two genomes", sampleGraph())
		require.NoError(t, st.Create(ctx, rec))
		require.NoError(t, uuid.Validate(rec.ID))
		assert.Equal(t, "E.coli + 1 more", rec.Title)
		assert.Equal(t, 2, rec.NumGenes)
		assert.False(t, rec.CreatedAt.IsZero())

		got, err := st.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.Title, got.Title)
		assert.Equal(t, []string{"E.coli", "B.subtilis"}, got.Genomes)
		assert.Equal(t, "ALL", got.Domain)
		require.Len(t, got.Graph.Links, 1)
		assert.Equal(t, 75.0, *got.Graph.Links[0].Score)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := st.Get(ctx, uuid.NewString())
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.True(t, errs.Is(err, errs.ErrCodeGraphNotFound))
	})

	t.Run("CreateInvalidGraph", func(t *testing.T) {
		g := sampleGraph()
		g.Nodes = append(g.Nodes, g.Nodes[0])
		err := st.Create(ctx, NewRecord("dup", "", g))
		assert.True(t, errs.IsInvalid(err), "got %v", err)
	})

	t.Run("Update", func(t *testing.T) {
		rec := NewRecord("before", "", sampleGraph())
		require.NoError(t, st.Create(ctx, rec))
		created := rec.CreatedAt

		rec.Title = "after"
		g := sampleGraph()
		g.Nodes = g.Nodes[:1]
		g.Links = nil
		rec.SetGraph(g)
		require.NoError(t, st.Update(ctx, rec))

		got, err := st.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
		assert.Equal(t, 1, got.NumGenes)
		assert.True(t, got.CreatedAt.Equal(created))
		assert.True(t, got.UpdatedAt.After(created))
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		rec := NewRecord("ghost", "", sampleGraph())
		rec.ID = uuid.NewString()
		assert.True(t, errors.Is(st.Update(ctx, rec), ErrNotFound))
	})

	t.Run("ListDelete", func(t *testing.T) {
		before, err := st.List(ctx, ListOptions{Limit: 1000})
		require.NoError(t, err)

		a := NewRecord("first", "", sampleGraph())
		b := NewRecord("second", "", sampleGraph())
		require.NoError(t, st.Create(ctx, a))
		require.NoError(t, st.Create(ctx, b))

		all, err := st.List(ctx, ListOptions{Limit: 1000})
		require.NoError(t, err)
		require.Len(t, all, len(before)+2)
		assert.Equal(t, b.ID, all[0].ID, "newest first")
		assert.Equal(t, a.ID, all[1].ID)

		one, err := st.List(ctx, ListOptions{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, one, 1)
		assert.Equal(t, a.ID, one[0].ID)

		require.NoError(t, st.Delete(ctx, a.ID))
		assert.True(t, errors.Is(st.Delete(ctx, a.ID), ErrNotFound))
		_, err = st.Get(ctx, a.ID)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("CreateDuplicateID", func(t *testing.T) {
		rec := NewRecord("x", "", sampleGraph())
		require.NoError(t, st.Create(ctx, rec))
		again := NewRecord("y", "", sampleGraph())
		again.ID = rec.ID
		assert.Error(t, st.Create(ctx, again))
	})
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore()
	st.now = clock()
	testStore(t, st)
}

func TestFileStore(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	st.now = clock()
	testStore(t, st)
}

func TestFileStoreRejectsPathIDs(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	_, err = st.Get(context.Background(), "../../etc/passwd")
	assert.True(t, errors.Is(err, ErrNotFound))
}

// TestMongoStore runs against a live server named by SYNTOWER_TEST_MONGO.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("SYNTOWER_TEST_MONGO")
	if uri == "" {
		t.Skip("SYNTOWER_TEST_MONGO not set")
	}
	ctx := context.Background()
	st, err := NewMongoStore(ctx, MongoConfig{
		URI:        uri,
		Database:   "syntower_test",
		Collection: "graphs_" + uuid.NewString()[:8],
	})
	require.NoError(t, err)
	defer func() {
		_ = st.coll.Drop(ctx)
		_ = st.Close(ctx)
	}()
	st.now = clock()
	testStore(t, st)
}

func TestPage(t *testing.T) {
	s := []Summary{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	assert.Len(t, page(s, ListOptions{}), 3)
	assert.Len(t, page(s, ListOptions{Limit: 2}), 2)
	assert.Empty(t, page(s, ListOptions{Offset: 5}))
	assert.Equal(t, "c", page(s, ListOptions{Offset: 2})[0].ID)
}

func TestDefaultTitle(t *testing.T) {
	assert.Equal(t, "untitled", defaultTitle(nil))
	assert.Equal(t, "G1", defaultTitle([]string{"G1"}))
	assert.Equal(t, "G1 + 2 more", defaultTitle([]string{"G1", "G2", "G3"}))
}
