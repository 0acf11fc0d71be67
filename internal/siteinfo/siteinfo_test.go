package siteinfo_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"live-reservation/internal/cache"
	"live-reservation/internal/logger"
	"live-reservation/internal/models"
	"live-reservation/internal/siteinfo"
)

func setupTestDB(t *testing.T) *siteinfo.DB {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, bunDB.ResetModel(context.Background(), (*models.SiteInfo)(nil)))

	return &siteinfo.DB{Bun: bunDB}
}

func TestUpsertAndGetValue(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Upsert("bg_image", "aGVsbG8="))

	value, found, err := db.GetValue("bg_image")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "aGVsbG8=", value)

	// Second write for the same key overwrites, no duplicate row.
	require.NoError(t, db.Upsert("bg_image", "d29ybGQ="))
	value, found, err = db.GetValue("bg_image")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "d29ybGQ=", value)
}

// An empty value is stored as an empty string, not NULL, so the row
// survives the NOT NULL constraint and reads back as present.
func TestUpsertEmptyValue(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Upsert("bg_image", ""))

	value, found, err := db.GetValue("bg_image")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "", value)
}

func TestGetValueAbsentKey(t *testing.T) {
	db := setupTestDB(t)

	_, found, err := db.GetValue("top_image")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteValue(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Upsert("top_image", "abc"))
	require.NoError(t, db.Delete("top_image"))

	_, found, err := db.GetValue("top_image")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestServiceGetFallsBackToDefault(t *testing.T) {
	svc := siteinfo.NewService(setupTestDB(t), cache.NewMemoryCache(time.Minute), logger.NewConsole())

	assert.Equal(t, "fallback", svc.Get(context.Background(), "bg_image", "fallback"))
}

func TestServiceSetThenGet(t *testing.T) {
	svc := siteinfo.NewService(setupTestDB(t), cache.NewMemoryCache(time.Minute), logger.NewConsole())
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "bg_image", "abc"))
	assert.Equal(t, "abc", svc.Get(ctx, "bg_image", "fallback"))

	// Reset flushes the cached value too.
	require.NoError(t, svc.Reset(ctx, "bg_image"))
	assert.Equal(t, "fallback", svc.Get(ctx, "bg_image", "fallback"))
}
