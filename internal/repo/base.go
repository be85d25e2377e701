package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base holds the GORM connection every domain repository builds on. Domain
// repos embed it and resolve their session through DB so query cancellation
// follows the request context.
type Base struct {
	conn *gorm.DB
}

// NewBase wraps a GORM connection for embedding in a domain repository.
func NewBase(conn *gorm.DB) Base {
	return Base{conn: conn}
}

// DB returns a session bound to ctx, or the raw connection when ctx is nil.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.conn
	}
	return b.conn.WithContext(ctx)
}
