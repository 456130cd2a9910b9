package core

import (
	"fmt"

	"github.com/marcmoiagese/ArbreFamiliar/db"
)

// Consultes autoritzades sobre persones i esdeveniments. Totes reben el token
// de sessió i només veuen registres propietat de l'usuari del token.

// PersonaPerID retorna una persona de l'arbre del caller.
func (a *App) PersonaPerID(token, id string) (*db.Persona, error) {
	u, err := a.UsuariPerToken(token)
	if err != nil {
		return nil, err
	}
	p, err := a.persones.ReadByKey(a.DB.SQL(), id)
	if err != nil {
		return nil, errorDeBD("la consulta de persones", err)
	}
	if p == nil || p.Usuari != u.Usuari {
		// no revelem si la persona existeix en un altre arbre
		return nil, &ErrorNoTrobat{Motiu: fmt.Sprintf("cap persona amb id %q al teu arbre", id)}
	}
	return p, nil
}

// PersonesDeUsuari retorna totes les persones de l'arbre del caller.
func (a *App) PersonesDeUsuari(token string) ([]db.Persona, error) {
	u, err := a.UsuariPerToken(token)
	if err != nil {
		return nil, err
	}
	persones, err := a.persones.ReadPerUsuari(a.DB.SQL(), u.Usuari)
	if err != nil {
		return nil, errorDeBD("la consulta de persones", err)
	}
	return persones, nil
}

// EsdevenimentPerID retorna un esdeveniment de l'arbre del caller.
func (a *App) EsdevenimentPerID(token, id string) (*db.Esdeveniment, error) {
	u, err := a.UsuariPerToken(token)
	if err != nil {
		return nil, err
	}
	ev, err := a.esdeveniments.ReadByKey(a.DB.SQL(), id)
	if err != nil {
		return nil, errorDeBD("la consulta d'esdeveniments", err)
	}
	if ev == nil || ev.Usuari != u.Usuari {
		return nil, &ErrorNoTrobat{Motiu: fmt.Sprintf("cap esdeveniment amb id %q al teu arbre", id)}
	}
	return ev, nil
}

// EsdevenimentsDeUsuari retorna tots els esdeveniments de l'arbre del caller.
func (a *App) EsdevenimentsDeUsuari(token string) ([]db.Esdeveniment, error) {
	u, err := a.UsuariPerToken(token)
	if err != nil {
		return nil, err
	}
	esdeveniments, err := a.esdeveniments.ReadPerUsuari(a.DB.SQL(), u.Usuari)
	if err != nil {
		return nil, errorDeBD("la consulta d'esdeveniments", err)
	}
	return esdeveniments, nil
}
