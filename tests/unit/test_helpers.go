package unit

import (
	"os"
	"testing"

	"github.com/marcmoiagese/ArbreFamiliar/core"
	"github.com/marcmoiagese/ArbreFamiliar/db"
)

func init() {
	// Els camins relatius (db/*.sql, data/) resolen des de l'arrel del repositori.
	_ = os.Chdir("../..")
}

// newTestConfig retorna una configuració mínima per a tests amb SQLite en memòria.
func newTestConfig() map[string]string {
	return map[string]string{
		"DB_ENGINE":   "sqlite",
		"DB_PATH":     ":memory:",
		"ENV":         "test",
		"LOG_LEVEL":   "silent",
		"RECREADB":    "true", // perquè es creï l'esquema de la BD als tests
		"GENERACIONS": "0",    // el registre no fabrica arbre sencer als tests
	}
}

// newTestApp crea una *core.App per a tests amb una BD SQLite in-memory i
// llavor d'atzar fixa.
func newTestApp(t *testing.T) *core.App {
	t.Helper()

	cfg := newTestConfig()

	database, err := db.NewDB(cfg)
	if err != nil {
		t.Fatalf("db.NewDB: %v", err)
	}

	app := core.NewApp(cfg, database)
	app.Llavor = func() int64 { return 42 }
	return app
}

// closeTestApp tanca l'App de proves.
func closeTestApp(t *testing.T, app *core.App) {
	t.Helper()
	if app != nil {
		app.Close()
	}
}

// registraUsuariDeTest crea un compte complet i retorna la sessió oberta.
func registraUsuariDeTest(t *testing.T, app *core.App, usuari string) core.SessioIniciada {
	t.Helper()

	sessio, err := app.RegistraUsuari(core.PeticioRegistre{
		Usuari:      usuari,
		Contrasenya: "secret123",
		Correu:      usuari + "@exemple.cat",
		Nom:         "Teresa",
		Cognoms:     "Puig",
		Genere:      db.GenereFemeni,
	})
	if err != nil {
		t.Fatalf("RegistraUsuari(%s): %v", usuari, err)
	}
	return sessio
}
