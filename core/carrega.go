package core

import (
	"github.com/marcmoiagese/ArbreFamiliar/db"
)

// LotCarrega – dades completes per a una càrrega massiva.
type LotCarrega struct {
	Usuaris       []db.Usuari
	Persones      []db.Persona
	Esdeveniments []db.Esdeveniment
}

// CarregaMassiva buida tota la BD i hi insereix el lot rebut, en una única
// transacció: si qualsevol inserció falla, la BD queda exactament com abans.
func (a *App) CarregaMassiva(lot LotCarrega) error {
	tx, err := a.DB.Begin()
	if err != nil {
		return errorDeBD("l'obertura de transacció", err)
	}
	confirmada := false
	defer func() {
		if !confirmada {
			_ = tx.Rollback()
		}
	}()

	for _, taula := range []string{"tokens", "esdeveniments", "usuaris", "persones"} {
		if err := db.DeleteTot(tx, taula); err != nil {
			return errorDeBD("la neteja", err)
		}
	}

	// Persones abans que usuaris: usuaris.persona_id és clau forana.
	if err := a.persones.CreateAll(tx, lot.Persones); err != nil {
		return errorDeBD("la càrrega de persones", err)
	}
	if err := a.usuaris.CreateAll(tx, lot.Usuaris); err != nil {
		return errorDeBD("la càrrega d'usuaris", err)
	}
	if err := a.esdeveniments.CreateAll(tx, lot.Esdeveniments); err != nil {
		return errorDeBD("la càrrega d'esdeveniments", err)
	}

	if err := tx.Commit(); err != nil {
		return errorDeBD("el commit", err)
	}
	confirmada = true

	Infof("Càrrega massiva: %d usuaris, %d persones, %d esdeveniments",
		len(lot.Usuaris), len(lot.Persones), len(lot.Esdeveniments))
	return nil
}

// NetejaTot buida totes les taules del servei.
func (a *App) NetejaTot() error {
	tx, err := a.DB.Begin()
	if err != nil {
		return errorDeBD("l'obertura de transacció", err)
	}
	confirmada := false
	defer func() {
		if !confirmada {
			_ = tx.Rollback()
		}
	}()

	for _, taula := range []string{"tokens", "esdeveniments", "usuaris", "persones"} {
		if err := db.DeleteTot(tx, taula); err != nil {
			return errorDeBD("la neteja", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errorDeBD("el commit", err)
	}
	confirmada = true

	Infof("Neteja completa de la BD")
	return nil
}
