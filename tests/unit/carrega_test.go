package unit

import (
	"errors"
	"testing"

	"github.com/marcmoiagese/ArbreFamiliar/core"
	"github.com/marcmoiagese/ArbreFamiliar/db"
)

func lotDeTest() core.LotCarrega {
	return core.LotCarrega{
		Usuaris: []db.Usuari{{
			Usuari:      "importat",
			Contrasenya: []byte("$2a$10$hash"),
			Correu:      "importat@exemple.cat",
			Nom:         "Josep",
			Cognoms:     "Serra",
			Genere:      db.GenereMasculi,
		}},
		Persones: []db.Persona{
			{ID: "p1", Usuari: "importat", Nom: "Josep", Cognoms: "Serra", Genere: db.GenereMasculi},
			{ID: "p2", Usuari: "importat", Nom: "Ramon", Cognoms: "Serra", Genere: db.GenereMasculi},
		},
		Esdeveniments: []db.Esdeveniment{
			{ID: "e1", Usuari: "importat", PersonaID: "p1", Tipus: db.TipusNaixement, Any: 1990, Ciutat: "Lleida", Pais: "ES"},
		},
	}
}

func TestCarregaMassivaSubstitueixTotaLaBD(t *testing.T) {
	app := newTestApp(t)
	defer closeTestApp(t, app)

	// dades prèvies que la càrrega ha d'escombrar, tokens inclosos
	sessio := registraUsuariDeTest(t, app, "mteresa")

	if err := app.CarregaMassiva(lotDeTest()); err != nil {
		t.Fatalf("CarregaMassiva: %v", err)
	}

	acc := db.NewPersonaAccessor(app.DB.Style())
	persones, err := acc.ReadPerUsuari(app.DB.SQL(), "importat")
	if err != nil {
		t.Fatalf("ReadPerUsuari: %v", err)
	}
	if len(persones) != 2 {
		t.Errorf("esperava 2 persones importades, tinc %d", len(persones))
	}

	anteriors, err := acc.ReadPerUsuari(app.DB.SQL(), "mteresa")
	if err != nil {
		t.Fatalf("ReadPerUsuari(mteresa): %v", err)
	}
	if len(anteriors) != 0 {
		t.Errorf("les dades prèvies haurien d'haver desaparegut, tinc %d persones", len(anteriors))
	}

	var ent *core.ErrorNoTrobat
	if _, err := app.UsuariPerToken(sessio.Token); !errors.As(err, &ent) {
		t.Errorf("el token previ hauria d'haver quedat revocat, tinc %v", err)
	}
}

func TestCarregaMassivaAmbErrorNoDeixaRastre(t *testing.T) {
	app := newTestApp(t)
	defer closeTestApp(t, app)

	sessio := registraUsuariDeTest(t, app, "mteresa")

	lot := lotDeTest()
	// clau duplicada dins el lot: la inserció falla i tot es desfà
	lot.Persones = append(lot.Persones, lot.Persones[0])

	err := app.CarregaMassiva(lot)
	var ee *core.ErrorEmmagatzematge
	if !errors.As(err, &ee) {
		t.Fatalf("esperava ErrorEmmagatzematge, tinc %v", err)
	}

	// la BD queda com abans de la càrrega: l'usuari previ i el seu token viuen
	u, err := app.UsuariPerToken(sessio.Token)
	if err != nil {
		t.Fatalf("el token previ hauria de seguir viu: %v", err)
	}
	if u.Usuari != "mteresa" {
		t.Errorf("token resolt a %q", u.Usuari)
	}

	acc := db.NewPersonaAccessor(app.DB.Style())
	importades, err := acc.ReadPerUsuari(app.DB.SQL(), "importat")
	if err != nil {
		t.Fatalf("ReadPerUsuari: %v", err)
	}
	if len(importades) != 0 {
		t.Errorf("ha quedat rastre de la càrrega fallida: %d persones", len(importades))
	}
}

func TestNetejaTotBuidaTotesLesTaules(t *testing.T) {
	app := newTestApp(t)
	defer closeTestApp(t, app)

	sessio := registraUsuariDeTest(t, app, "mteresa")

	if err := app.NetejaTot(); err != nil {
		t.Fatalf("NetejaTot: %v", err)
	}

	var ent *core.ErrorNoTrobat
	if _, err := app.UsuariPerToken(sessio.Token); !errors.As(err, &ent) {
		t.Errorf("després de netejar el token no hauria d'existir, tinc %v", err)
	}

	acc := db.NewPersonaAccessor(app.DB.Style())
	persones, err := acc.ReadAll(app.DB.SQL())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(persones) != 0 {
		t.Errorf("queden %d persones després de netejar", len(persones))
	}
}
