package models

import "github.com/uptrace/bun"

// SiteInfo is the singleton key/value store for appearance assets
// (base64 images under keys like "bg_image" and "top_image").
type SiteInfo struct {
	bun.BaseModel `bun:"table:site_info"`

	Key   string `bun:"key,pk" json:"key"`
	Value string `bun:"value,notnull" json:"value"`
}
