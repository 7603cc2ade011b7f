package db_test

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/db"
)

func newStoreFromMock(conn *sql.DB) *db.Store {
	return db.New(sqlx.NewDb(conn, "sqlmock"), 0)
}
