package core

import (
	"database/sql"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/marcmoiagese/ArbreFamiliar/db"
)

// ResultatOmplir resumeix una regeneració d'arbre acabada amb èxit.
type ResultatOmplir struct {
	Persones      int
	Esdeveniments int
}

// Missatge retorna el text de resposta per al caller.
func (r ResultatOmplir) Missatge() string {
	return fmt.Sprintf("S'han afegit %d persones i %d esdeveniments a la base de dades.",
		r.Persones, r.Esdeveniments)
}

// OmplirArbre regenera de dalt a baix l'arbre d'avantpassats d'un usuari:
// esborra totes les persones i esdeveniments que li pertanyien, fabrica un
// arbre nou de `generacions` nivells i el persisteix. Tot o res: la neteja i
// la persistència comparteixen una única transacció que es desfà sencera si
// qualsevol pas falla, de manera que mai queda visible un arbre a mitges.
//
// La validació (generacions negatives, usuari inexistent) es resol abans
// d'obrir la transacció d'escriptura i no deixa cap efecte a la BD.
func (a *App) OmplirArbre(usuari string, generacions int) (ResultatOmplir, error) {
	if generacions < 0 {
		return ResultatOmplir{}, &ErrorValidacio{Motiu: "el nombre de generacions no pot ser negatiu"}
	}

	u, err := a.usuaris.ReadByKey(a.DB.SQL(), usuari)
	if err != nil {
		return ResultatOmplir{}, errorDeBD("la validació", err)
	}
	if u == nil {
		return ResultatOmplir{}, &ErrorNoTrobat{Motiu: fmt.Sprintf("l'usuari %q no existeix", usuari)}
	}

	tx, err := a.DB.Begin()
	if err != nil {
		return ResultatOmplir{}, errorDeBD("l'obertura de transacció", err)
	}
	confirmada := false
	defer func() {
		if !confirmada {
			_ = tx.Rollback()
		}
	}()

	// Neteja: l'omplir és una substitució completa, no incremental.
	if err := a.netejaDadesUsuari(tx, u.Usuari); err != nil {
		return ResultatOmplir{}, err
	}

	// Generació: pura, en memòria; si falla no s'ha escrit res encara.
	arrel := db.Persona{
		ID:      uuid.NewString(),
		Usuari:  u.Usuari,
		Nom:     u.Nom,
		Cognoms: u.Cognoms,
		Genere:  u.Genere,
	}
	gen := GeneradorArbre{
		Noms:     a.Noms,
		Llocs:    a.Llocs,
		Politica: a.Politica,
		Rand:     rand.New(rand.NewSource(a.Llavor())),
	}
	lot := gen.Genera(arrel, generacions)

	// Persistència: tot el lot dins la mateixa transacció de la neteja.
	if err := a.persones.CreateAll(tx, lot.Persones); err != nil {
		return ResultatOmplir{}, errorDeBD("la persistència de persones", err)
	}
	if err := a.esdeveniments.CreateAll(tx, lot.Esdeveniments); err != nil {
		return ResultatOmplir{}, errorDeBD("la persistència d'esdeveniments", err)
	}
	if err := a.usuaris.UpdatePersonaID(tx, u.Usuari, sql.NullString{String: arrel.ID, Valid: true}); err != nil {
		return ResultatOmplir{}, errorDeBD("l'enllaç de la persona arrel", err)
	}

	if err := tx.Commit(); err != nil {
		return ResultatOmplir{}, errorDeBD("el commit", err)
	}
	confirmada = true

	resultat := ResultatOmplir{Persones: len(lot.Persones), Esdeveniments: len(lot.Esdeveniments)}
	Infof("Arbre regenerat per a %s: %d persones, %d esdeveniments (%d generacions)",
		u.Usuari, resultat.Persones, resultat.Esdeveniments, generacions)
	return resultat, nil
}

// netejaDadesUsuari esborra tot el que pertany a l'usuari dins la transacció:
// primer es desreferencia la persona arrel (clau forana des d'usuaris) i
// després cauen esdeveniments i persones. L'usuari i els seus tokens queden.
func (a *App) netejaDadesUsuari(tx *sql.Tx, usuari string) error {
	if err := a.usuaris.UpdatePersonaID(tx, usuari, sql.NullString{}); err != nil {
		return errorDeBD("la neteja", err)
	}
	style := a.DB.Style()
	if _, err := db.DeletePerUsuari(tx, style, "esdeveniments", usuari); err != nil {
		return errorDeBD("la neteja", err)
	}
	if _, err := db.DeletePerUsuari(tx, style, "persones", usuari); err != nil {
		return errorDeBD("la neteja", err)
	}
	return nil
}
