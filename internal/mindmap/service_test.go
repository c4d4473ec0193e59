package mindmap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studyhive/collab-service/internal/mindmap"
)

func newTestService(t *testing.T) *mindmap.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&mindmap.Mindmap{}))

	return mindmap.NewService(mindmap.NewGormRepository(db))
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", "Alice", &mindmap.CreateRequest{
		Title: "Thermodynamics review",
		Nodes: `[{"id":"n1"}]`,
		Edges: `[]`,
		Tags:  []string{"physics", "exam"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thermodynamics review", got.Title)
	assert.Equal(t, "alice", got.OwnerID)
	assert.Equal(t, `[{"id":"n1"}]`, got.Nodes)
	assert.Equal(t, []string{"physics", "exam"}, []string(got.Tags))
}

func TestGetMissing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, mindmap.ErrMindmapNotFound)
}

func TestListMineOrdersAndFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "Alice", &mindmap.CreateRequest{Title: "first"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "Bob", &mindmap.CreateRequest{Title: "not mine"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", "Alice", &mindmap.CreateRequest{Title: "second"})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, m := range mine {
		assert.Equal(t, "alice", m.OwnerID)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", "Alice", &mindmap.CreateRequest{
		Title: "draft",
		Nodes: `[]`,
	})
	require.NoError(t, err)

	newNodes := `[{"id":"n1"},{"id":"n2"}]`
	updated, err := svc.Update(ctx, "alice", created.ID, &mindmap.UpdateRequest{
		Nodes: &newNodes,
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", updated.Title) // untouched
	assert.Equal(t, newNodes, updated.Nodes)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", "Alice", &mindmap.CreateRequest{Title: "mine"})
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.Update(ctx, "mallory", created.ID, &mindmap.UpdateRequest{Title: &title})
	assert.ErrorIs(t, err, mindmap.ErrNotOwner)
}

func TestDeleteRemovesMindmap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", "Alice", &mindmap.CreateRequest{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, mindmap.ErrMindmapNotFound)
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", "Alice", &mindmap.CreateRequest{Title: "mine"})
	require.NoError(t, err)

	err = svc.Delete(ctx, "mallory", created.ID)
	assert.ErrorIs(t, err, mindmap.ErrNotOwner)
}

func TestExists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", "Alice", &mindmap.CreateRequest{Title: "exists"})
	require.NoError(t, err)

	ok, err := svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, "no-such-id")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleted mindmaps stop being joinable.
	require.NoError(t, svc.Delete(ctx, "alice", created.ID))
	ok, err = svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
