package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	Path string
	Conn *sql.DB
}

func (d *SQLite) Connect() error {
	conn, err := sql.Open("sqlite3", d.Path)
	if err != nil {
		return fmt.Errorf("error connectant a SQLite: %w", err)
	}
	d.Conn = conn

	// SQLite només admet un escriptor; limitem el pool per evitar SQLITE_BUSY.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("error activant foreign_keys: %w", err)
	}

	logInfof("Conectat a SQLite (%s)", d.Path)
	return nil
}

func (d *SQLite) Close() {
	if d.Conn != nil {
		d.Conn.Close()
	}
}

func (d *SQLite) Exec(query string, args ...interface{}) (int64, error) {
	res, err := d.Conn.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// SQL retorna la connexió SQL neta
func (d *SQLite) SQL() *sql.DB {
	return d.Conn
}

func (d *SQLite) Style() string { return "sqlite" }

func (d *SQLite) Begin() (*sql.Tx, error) {
	return d.Conn.Begin()
}
