package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskreminder/internal/domain/entity"
	"taskreminder/internal/domain/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "tasks.db"), "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func TestTaskRepository_CRUD(t *testing.T) {
	repo := NewTaskRepository(openTestDB(t))
	ctx := context.Background()
	deadline := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	id, err := repo.Create(ctx, &entity.Task{Title: "Renew passport", Category: "Errands", Priority: 2, Deadline: deadline})
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renew passport", got.Title)
	assert.True(t, got.Deadline.Equal(deadline))
	assert.False(t, got.IsCompleted)
	assert.False(t, got.CreatedAt.IsZero())

	got.IsCompleted = true
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.FindByID(ctx, id)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = repo.Delete(ctx, id)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTaskRepository_Queries(t *testing.T) {
	repo := NewTaskRepository(openTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	mk := func(title, category string, offset time.Duration, done bool) {
		_, err := repo.Create(ctx, &entity.Task{Title: title, Category: category, Priority: 3, Deadline: base.Add(offset), IsCompleted: done})
		require.NoError(t, err)
	}
	mk("late", "Work", 3*time.Hour, false)
	mk("early", "Home", time.Hour, false)
	mk("done", "Work", 2*time.Hour, true)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"early", "done", "late"}, titles(all))

	open, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, titles(open))

	work, err := repo.FindByCategory(ctx, "Work")
	require.NoError(t, err)
	assert.Equal(t, []string{"done", "late"}, titles(work))
}

func TestTaskRepository_CountByCategory(t *testing.T) {
	repo := NewTaskRepository(openTestDB(t))
	ctx := context.Background()

	counts, err := repo.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)

	deadline := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	for _, task := range []*entity.Task{
		{Title: "a", Category: "Work", Deadline: deadline},
		{Title: "b", Category: "Work", Deadline: deadline, IsCompleted: true},
		{Title: "c", Category: "Home", Deadline: deadline},
	} {
		_, err := repo.Create(ctx, task)
		require.NoError(t, err)
	}

	counts, err = repo.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []repository.CategoryCount{
		{Category: "Home", Total: 1, Unfinished: 1},
		{Category: "Work", Total: 2, Unfinished: 1},
	}, counts)
}

func TestSettingRepository_GetSet(t *testing.T) {
	repo := NewSettingRepository(openTestDB(t))
	ctx := context.Background()

	_, found, err := repo.Get(ctx, entity.SettingReminderThreshold)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, entity.SettingReminderThreshold, "30"))
	require.NoError(t, repo.Set(ctx, entity.SettingReminderThreshold, "45"))

	v, found, err := repo.Get(ctx, entity.SettingReminderThreshold)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "45", v)
}

func titles(tasks []*entity.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}
