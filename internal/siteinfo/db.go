package siteinfo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"live-reservation/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// GetValue → fetch one site_info value; ok is false when the key is
// absent.
func (d *DB) GetValue(key string) (string, bool, error) {
	var info models.SiteInfo
	err := d.Bun.NewSelect().
		Model(&info).
		Where("key = ?", key).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return info.Value, true, nil
}

// Upsert → insert or overwrite a site_info value
func (d *DB) Upsert(key, value string) error {
	info := models.SiteInfo{Key: key, Value: value}
	_, err := d.Bun.NewInsert().
		Model(&info).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(context.Background())
	return err
}

// Delete → remove a site_info value
func (d *DB) Delete(key string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.SiteInfo)(nil)).
		Where("key = ?", key).
		Exec(context.Background())
	return err
}
