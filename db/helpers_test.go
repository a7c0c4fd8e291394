package db_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/alwitt/scribe/db"
	"github.com/apex/log"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// newTestClient connect to a fresh sqlite DB file with tables defined
func newTestClient(t *testing.T) db.Client {
	testDB := fmt.Sprintf("/tmp/scribe_ut_%s.db", ulid.Make().String())
	log.WithField("db", testDB).Debug("Test database")

	uut, err := db.NewConnection(db.GetSqliteDialector(testDB), logger.Error)
	require.Nil(t, err)
	require.Nil(t, uut.RunSQLInTransaction(context.Background(), db.DefineTables))
	return uut
}

// randomHex random lowercase hex string of 2*n characters
func randomHex(t *testing.T, n int) string {
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.Nil(t, err)
	return hex.EncodeToString(buf)
}
