package db

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// DB interface defineix els mètodes comuns per a tots els motors de BD.
// Les operacions sobre registres viuen als Accessors; aquí només hi ha
// connexió, transaccions i execució directa per al bootstrap de l'esquema.
type DB interface {
	Connect() error
	Close()
	Exec(query string, args ...interface{}) (int64, error)
	SQL() *sql.DB
	Style() string
	Begin() (*sql.Tx, error)
}

// Tipus d'esdeveniment coneguts. La columna tipus admet també valors lliures
// (per exemple en càrregues massives), però el generador només fa servir aquests.
const (
	TipusNaixement = "naixement"
	TipusMatrimoni = "matrimoni"
	TipusDefuncio  = "defuncio"
)

// Gèneres admesos per a persones i usuaris.
const (
	GenereMasculi = "m"
	GenereFemeni  = "f"
)

// Persona – registre d'una persona dins l'arbre d'un usuari.
// Els camps PareID/MareID/ConjugeID poden quedar sense valor: els avantpassats
// de l'última generació fabricada no tenen progenitors.
type Persona struct {
	ID        string
	Usuari    string // usuari propietari (àmbit de neteja i regeneració)
	Nom       string
	Cognoms   string
	Genere    string
	PareID    sql.NullString
	MareID    sql.NullString
	ConjugeID sql.NullString
}

func (p Persona) Clau() string { return p.ID }

// Esdeveniment – fet vital d'una persona (naixement, matrimoni, defunció...).
type Esdeveniment struct {
	ID        string
	Usuari    string
	PersonaID string
	Tipus     string
	Any       int
	Ciutat    string
	Pais      string
	Latitud   float64
	Longitud  float64
}

func (e Esdeveniment) Clau() string { return e.ID }

// Usuari – compte del servei. PersonaID apunta a la persona arrel del seu arbre.
type Usuari struct {
	Usuari      string
	Contrasenya []byte // hash bcrypt
	Correu      string
	Nom         string
	Cognoms     string
	Genere      string
	PersonaID   sql.NullString
}

func (u Usuari) Clau() string { return u.Usuari }

// TokenAuth – token opac de sessió associat a un usuari.
type TokenAuth struct {
	Token  string
	Usuari string
}

func (t TokenAuth) Clau() string { return t.Token }

// NewDB – Funció principal per obtenir una connexió i recrear la BD si cal.
func NewDB(config map[string]string) (DB, error) {
	var dbInstance DB
	engine := config["DB_ENGINE"]

	switch engine {
	case "sqlite":
		dbInstance = &SQLite{Path: config["DB_PATH"]}
	case "postgres":
		dbInstance = &PostgreSQL{
			Host:   config["DB_HOST"],
			Port:   config["DB_PORT"],
			User:   config["DB_USR"],
			Pass:   config["DB_PASS"],
			DBName: config["DB_NAME"],
		}
	case "mysql":
		dbInstance = &MySQL{
			Host:   config["DB_HOST"],
			Port:   config["DB_PORT"],
			User:   config["DB_USR"],
			Pass:   config["DB_PASS"],
			DBName: config["DB_NAME"],
		}
	default:
		return nil, fmt.Errorf("motor de BD desconegut: %s", engine)
	}

	// Connectem primer
	if err := dbInstance.Connect(); err != nil {
		return nil, err
	}

	// Si cal, recrearem la BD
	if config["RECREADB"] == "true" {
		sqlFile := getSQLFilePath(engine)
		if err := CreateDatabaseFromSQL(sqlFile, engine, dbInstance); err != nil {
			return nil, fmt.Errorf("error recreant BD amb %s: %v", engine, err)
		}
	}

	return dbInstance, nil
}

// Obtenir el path del fitxer SQL segons el motor
func getSQLFilePath(engine string) string {
	switch engine {
	case "sqlite":
		return "db/SQLite.sql"
	case "postgres":
		return "db/PostgreSQL.sql"
	case "mysql":
		return "db/MySQL.sql"
	default:
		return ""
	}
}

// CreateDatabaseFromSQL – Funció genèrica per executar totes les sentències SQL d'un fitxer
func CreateDatabaseFromSQL(sqlFile, engine string, db DB) error {
	logInfof("Recreant BD des de: %s", sqlFile)
	data, err := os.ReadFile(sqlFile)
	if err != nil {
		return fmt.Errorf("no s'ha pogut llegir el fitxer SQL: %w", err)
	}

	raw := string(data)

	// 1) Elimina línies de comentari i línies buides,
	//    però conserva el SQL que vingui després en altres línies
	var b strings.Builder
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") || trimmed == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	cleanSQL := b.String()

	// 2) Separa per ';' i neteja espais. (Semicolons al final del statement)
	parts := strings.Split(cleanSQL, ";")

	// 3) Escollir com començar la transacció segons el motor
	beginStmt := "BEGIN"
	if engine == "sqlite" {
		beginStmt = "BEGIN IMMEDIATE"
	}

	if _, err := db.Exec(beginStmt); err != nil {
		return fmt.Errorf("no s'ha pogut començar transacció: %w", err)
	}
	defer func() {
		// en cas d'error, el caller retornarà; aquí fem un ROLLBACK best-effort
		_, _ = db.Exec("ROLLBACK")
	}()

	// 4) Activar FKs només per SQLite (PRAGMA és específic de SQLite)
	if engine == "sqlite" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("error activant foreign_keys: %w", err)
		}
	}

	// 5) Executa cada statement
	for _, stmt := range parts {
		q := strings.TrimSpace(stmt)
		if q == "" {
			continue
		}
		// Evita BEGIN/COMMIT del fitxer, si n'hi hagués
		low := strings.ToLower(q)
		if low == "begin" || low == "commit" || strings.HasPrefix(low, "begin ") || strings.HasPrefix(low, "commit ") {
			continue
		}

		if _, err := db.Exec(q); err != nil {
			// Mostra un tros de l'SQL per facilitar el debug
			snip := q
			if len(snip) > 120 {
				snip = snip[:120] + " ..."
			}
			logErrorf("error executant '%s': %v", snip, err)
			return fmt.Errorf("error executant '%s': %w", snip, err)
		}
	}

	// 6) Commit final
	if _, err := db.Exec("COMMIT"); err != nil {
		return fmt.Errorf("error fent COMMIT: %w", err)
	}

	logInfof("BD recreada correctament")
	return nil
}
