package models

import "github.com/uptrace/bun"

// User is a member account. The password is stored as-is; the
// credential check lives behind auth.CredentialChecker so the storage
// can move to hashes without touching callers.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Email    string `bun:"email,unique,notnull" json:"email"`
	Password string `bun:"password,notnull" json:"-"`
	Name     string `bun:"name,notnull" json:"name"`
}
