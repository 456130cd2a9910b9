package core

import (
	"errors"
	"fmt"

	"github.com/marcmoiagese/ArbreFamiliar/db"
)

// Categories d'error que veuen els callers dels serveis. Cada categoria
// porta un missatge llegible sense identificadors interns ni traces.

// ErrorValidacio – petició mal formada (generacions negatives, camps buits...).
// No provoca cap efecte a la BD.
type ErrorValidacio struct {
	Motiu string
}

func (e *ErrorValidacio) Error() string { return "error de validació: " + e.Motiu }

// ErrorNoTrobat – un usuari, persona o esdeveniment esperat no existeix.
type ErrorNoTrobat struct {
	Motiu string
}

func (e *ErrorNoTrobat) Error() string { return "no trobat: " + e.Motiu }

// ErrorConflicte – col·lisió de claus en crear registres.
type ErrorConflicte struct {
	Motiu string
}

func (e *ErrorConflicte) Error() string { return "conflicte: " + e.Motiu }

// ErrorEmmagatzematge – fallada de connexió o de restricció del motor de BD.
type ErrorEmmagatzematge struct {
	Etapa string
	Err   error
}

func (e *ErrorEmmagatzematge) Error() string {
	return fmt.Sprintf("error d'emmagatzematge durant %s: %v", e.Etapa, e.Err)
}

func (e *ErrorEmmagatzematge) Unwrap() error { return e.Err }

// errorDeBD tradueix els errors del paquet db a la taxonomia del core.
func errorDeBD(etapa string, err error) error {
	var conflicte *db.ErrConflicte
	if errors.As(err, &conflicte) {
		return &ErrorConflicte{Motiu: conflicte.Error()}
	}
	var noTrobat *db.ErrNoTrobat
	if errors.As(err, &noTrobat) {
		return &ErrorNoTrobat{Motiu: noTrobat.Error()}
	}
	return &ErrorEmmagatzematge{Etapa: etapa, Err: err}
}
