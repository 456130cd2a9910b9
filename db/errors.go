package db

import (
	"fmt"
	"strings"
)

// ErrConflicte – s'ha intentat crear registres amb claus ja ocupades.
type ErrConflicte struct {
	Taula string
	Claus []string
}

func (e *ErrConflicte) Error() string {
	return fmt.Sprintf("no es poden crear registres a %s; claus ja ocupades: %s",
		e.Taula, strings.Join(e.Claus, ", "))
}

// ErrNoTrobat – s'ha intentat esborrar o actualitzar registres que no existeixen.
type ErrNoTrobat struct {
	Taula string
	Claus []string
}

func (e *ErrNoTrobat) Error() string {
	return fmt.Sprintf("registres inexistents a %s: %s",
		e.Taula, strings.Join(e.Claus, ", "))
}
