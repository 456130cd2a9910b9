package unit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marcmoiagese/ArbreFamiliar/cnf"
)

func TestLoadConfigIgnoraComentarisIEspais(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.cfg")
	contingut := `# comentari inicial
DB_ENGINE = sqlite
DB_PATH=./prova.db  # comentari al final
; un altre comentari

LOG_LEVEL=debug
GENERACIONS=6
`
	if err := os.WriteFile(path, []byte(contingut), 0o644); err != nil {
		t.Fatalf("no s'ha pogut escriure el fitxer: %v", err)
	}

	cfg, err := cnf.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg["DB_ENGINE"] != "sqlite" {
		t.Errorf("DB_ENGINE = %q", cfg["DB_ENGINE"])
	}
	if cfg["DB_PATH"] != "./prova.db" {
		t.Errorf("DB_PATH = %q (el comentari final no s'ha retallat)", cfg["DB_PATH"])
	}
	if _, hi := cfg["; un altre comentari"]; hi {
		t.Errorf("els comentaris amb ; no s'haurien de carregar")
	}

	ac := cnf.ParseConfig(cfg)
	if ac.LogLevel != "debug" || ac.Generacions != 6 {
		t.Errorf("configuració tipada inesperada: %+v", ac)
	}
}

func TestParseConfigValorsPerDefecte(t *testing.T) {
	ac := cnf.ParseConfig(map[string]string{})
	if ac.DBEngine != "sqlite" {
		t.Errorf("DBEngine per defecte = %q", ac.DBEngine)
	}
	if ac.HTTPPort != "8080" {
		t.Errorf("HTTPPort per defecte = %q", ac.HTTPPort)
	}
	if ac.DataDir != "data" {
		t.Errorf("DataDir per defecte = %q", ac.DataDir)
	}
	if ac.Generacions != 4 {
		t.Errorf("Generacions per defecte = %d", ac.Generacions)
	}
	if ac.RecreaDB {
		t.Errorf("RecreaDB hauria de ser fals per defecte")
	}
}

func TestParseConfigGeneracionsInvalides(t *testing.T) {
	ac := cnf.ParseConfig(map[string]string{"GENERACIONS": "-3"})
	if ac.Generacions != 4 {
		t.Errorf("un valor negatiu hauria de caure al defecte 4, tinc %d", ac.Generacions)
	}
}
