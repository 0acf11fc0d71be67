package auth

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

// GetUserByEmail → fetch one user by the unique email
func (d *DB) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("email = ?", email).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser → insert new member account, filling the generated id
func (d *DB) CreateUser(user *models.User) error {
	_, err := d.Bun.NewInsert().Model(user).Exec(context.Background())
	return err
}
