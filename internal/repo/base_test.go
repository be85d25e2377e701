package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestConn(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	return conn
}

func TestBaseDBBindsRequestContext(t *testing.T) {
	base := NewBase(openTestConn(t))

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	session := base.DB(ctx)
	require.NotNil(t, session)
	require.NotNil(t, session.Statement)
	require.Equal(t, ctx, session.Statement.Context)
}

func TestBaseDBNilContextReturnsRawConnection(t *testing.T) {
	conn := openTestConn(t)
	base := NewBase(conn)

	require.Same(t, conn, base.DB(nil))
}
