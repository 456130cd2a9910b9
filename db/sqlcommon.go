package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Executor – el mínim que necessita un Accessor per treballar. El satisfan
// tant *sql.DB (lectures fora de transacció) com *sql.Tx (l'àmbit
// transaccional d'una petició d'omplir o de càrrega). Els Accessors mai
// fan commit: això és cosa de qui ha obert la transacció.
type Executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// formatPlaceholders converteix '?' a placeholders de l'estil PostgreSQL ($1, $2...) si cal.
func formatPlaceholders(style, query string) string {
	if strings.ToLower(style) != "postgres" {
		return query
	}
	var b strings.Builder
	idx := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			b.WriteString(fmt.Sprintf("$%d", idx))
			idx++
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}

// placeholderList retorna "?, ?, ?" amb n interrogants.
func placeholderList(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
