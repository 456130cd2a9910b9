package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Model – qualsevol registre amb clau única. Els Accessors genèrics només
// necessiten saber la clau; la resta (columnes, mapatge) es configura per tipus.
type Model interface {
	Clau() string
}

// RowMapper transforma una fila escanejada en un model. És una funció pura:
// rep el Scan de la fila actual i retorna el registre construït d'una peça.
type RowMapper[M Model] func(scan func(dest ...interface{}) error) (M, error)

// Accessor – operacions genèriques de lectura/escriptura per a un tipus de
// registre. Totes les operacions s'executen contra l'Executor que passa el
// caller (normalment la *sql.Tx de la petició); l'Accessor mai fa commit.
type Accessor[M Model] struct {
	style    string
	taula    string
	clauCol  string
	columnes []string
	valors   func(M) []interface{}
	mapa     RowMapper[M]
}

// CreateAll insereix tots els models amb un únic INSERT multi-fila.
// Si alguna clau ja existeix no s'insereix res i es retorna ErrConflicte.
func (a Accessor[M]) CreateAll(e Executor, models []M) error {
	if len(models) == 0 {
		return nil
	}

	existents, err := a.ExistsAll(e, models)
	if err != nil {
		return err
	}
	var ocupades []string
	for i, hi := range existents {
		if hi {
			ocupades = append(ocupades, models[i].Clau())
		}
	}
	if len(ocupades) > 0 {
		return &ErrConflicte{Taula: a.taula, Claus: ocupades}
	}

	fila := "(" + placeholderList(len(a.columnes)) + ")"
	files := make([]string, len(models))
	args := make([]interface{}, 0, len(models)*len(a.columnes))
	for i, m := range models {
		files[i] = fila
		args = append(args, a.valors(m)...)
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		a.taula, strings.Join(a.columnes, ", "), strings.Join(files, ", "))
	stmt = formatPlaceholders(a.style, stmt)

	if _, err := e.Exec(stmt, args...); err != nil {
		return fmt.Errorf("error inserint a %s: %w", a.taula, err)
	}
	return nil
}

// ReadAll retorna tots els registres de la taula.
func (a Accessor[M]) ReadAll(e Executor) ([]M, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s", strings.Join(a.columnes, ", "), a.taula)
	return a.queryModels(e, stmt)
}

// ReadByKey retorna el registre amb la clau donada, o nil si no existeix.
func (a Accessor[M]) ReadByKey(e Executor, clau string) (*M, error) {
	stmt := formatPlaceholders(a.style, fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ?",
		strings.Join(a.columnes, ", "), a.taula, a.clauCol))
	models, err := a.queryModels(e, stmt, clau)
	if err != nil {
		return nil, err
	}
	switch len(models) {
	case 0:
		return nil, nil
	case 1:
		return &models[0], nil
	default:
		// no hauria de passar mai: la clau és única
		return nil, fmt.Errorf("la BD ha retornat %d files de %s per la clau %q", len(models), a.taula, clau)
	}
}

// UpdateAll actualitza tots els models (que han d'existir prèviament).
func (a Accessor[M]) UpdateAll(e Executor, models []M) error {
	if len(models) == 0 {
		return nil
	}

	if err := a.totsExisteixen(e, models); err != nil {
		return err
	}

	sets := make([]string, 0, len(a.columnes)-1)
	for _, col := range a.columnes {
		if col == a.clauCol {
			continue
		}
		sets = append(sets, col+" = ?")
	}
	stmt := formatPlaceholders(a.style, fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = ?",
		a.taula, strings.Join(sets, ", "), a.clauCol))

	for _, m := range models {
		args := make([]interface{}, 0, len(a.columnes))
		for i, col := range a.columnes {
			if col == a.clauCol {
				continue
			}
			args = append(args, a.valors(m)[i])
		}
		args = append(args, m.Clau())
		if _, err := e.Exec(stmt, args...); err != nil {
			return fmt.Errorf("error actualitzant %s: %w", a.taula, err)
		}
	}
	return nil
}

// DeleteAll esborra tots els models (que han d'existir prèviament).
func (a Accessor[M]) DeleteAll(e Executor, models []M) error {
	if len(models) == 0 {
		return nil
	}

	if err := a.totsExisteixen(e, models); err != nil {
		return err
	}

	claus := make([]interface{}, len(models))
	for i, m := range models {
		claus[i] = m.Clau()
	}
	stmt := formatPlaceholders(a.style, fmt.Sprintf(
		"DELETE FROM %s WHERE %s IN (%s)",
		a.taula, a.clauCol, placeholderList(len(claus))))
	if _, err := e.Exec(stmt, claus...); err != nil {
		return fmt.Errorf("error esborrant de %s: %w", a.taula, err)
	}
	return nil
}

// ExistsAll comprova quins models existeixen. El resultat conserva l'ordre
// dels models rebuts: resultat[i] correspon a models[i].
func (a Accessor[M]) ExistsAll(e Executor, models []M) ([]bool, error) {
	resultat := make([]bool, len(models))
	if len(models) == 0 {
		return resultat, nil
	}

	claus := make([]interface{}, len(models))
	for i, m := range models {
		claus[i] = m.Clau()
	}
	stmt := formatPlaceholders(a.style, fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s IN (%s)",
		a.clauCol, a.taula, a.clauCol, placeholderList(len(claus))))

	rows, err := e.Query(stmt, claus...)
	if err != nil {
		return nil, fmt.Errorf("error consultant %s: %w", a.taula, err)
	}
	defer rows.Close()

	trobades := make(map[string]bool, len(models))
	for rows.Next() {
		var clau string
		if err := rows.Scan(&clau); err != nil {
			return nil, err
		}
		trobades[clau] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, m := range models {
		resultat[i] = trobades[m.Clau()]
	}
	return resultat, nil
}

// totsExisteixen és el precheck compartit d'UpdateAll i DeleteAll.
func (a Accessor[M]) totsExisteixen(e Executor, models []M) error {
	existents, err := a.ExistsAll(e, models)
	if err != nil {
		return err
	}
	var absents []string
	for i, hi := range existents {
		if !hi {
			absents = append(absents, models[i].Clau())
		}
	}
	if len(absents) > 0 {
		return &ErrNoTrobat{Taula: a.taula, Claus: absents}
	}
	return nil
}

// queryModels executa una consulta i mapeja cada fila amb el RowMapper del tipus.
func (a Accessor[M]) queryModels(e Executor, stmt string, args ...interface{}) ([]M, error) {
	rows, err := e.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("error consultant %s: %w", a.taula, err)
	}
	defer rows.Close()

	var models []M
	for rows.Next() {
		m, err := a.mapa(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("error llegint fila de %s: %w", a.taula, err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return models, nil
}

// ---------------------------------------------------------------------------
// Accessors concrets
// ---------------------------------------------------------------------------

// PersonaAccessor dóna accés als registres de persones.
type PersonaAccessor struct {
	Accessor[Persona]
}

func NewPersonaAccessor(style string) PersonaAccessor {
	return PersonaAccessor{Accessor[Persona]{
		style:   style,
		taula:   "persones",
		clauCol: "id",
		columnes: []string{
			"id", "usuari", "nom", "cognoms", "genere", "pare_id", "mare_id", "conjuge_id",
		},
		valors: func(p Persona) []interface{} {
			return []interface{}{p.ID, p.Usuari, p.Nom, p.Cognoms, p.Genere, p.PareID, p.MareID, p.ConjugeID}
		},
		mapa: func(scan func(dest ...interface{}) error) (Persona, error) {
			var p Persona
			err := scan(&p.ID, &p.Usuari, &p.Nom, &p.Cognoms, &p.Genere, &p.PareID, &p.MareID, &p.ConjugeID)
			return p, err
		},
	}}
}

// ReadPerUsuari retorna totes les persones propietat d'un usuari.
func (a PersonaAccessor) ReadPerUsuari(e Executor, usuari string) ([]Persona, error) {
	stmt := formatPlaceholders(a.style, fmt.Sprintf(
		"SELECT %s FROM %s WHERE usuari = ?", strings.Join(a.columnes, ", "), a.taula))
	return a.queryModels(e, stmt, usuari)
}

// EsdevenimentAccessor dóna accés als registres d'esdeveniments.
type EsdevenimentAccessor struct {
	Accessor[Esdeveniment]
}

func NewEsdevenimentAccessor(style string) EsdevenimentAccessor {
	return EsdevenimentAccessor{Accessor[Esdeveniment]{
		style:   style,
		taula:   "esdeveniments",
		clauCol: "id",
		columnes: []string{
			"id", "usuari", "persona_id", "tipus", "any_acte", "ciutat", "pais", "latitud", "longitud",
		},
		valors: func(ev Esdeveniment) []interface{} {
			return []interface{}{ev.ID, ev.Usuari, ev.PersonaID, ev.Tipus, ev.Any, ev.Ciutat, ev.Pais, ev.Latitud, ev.Longitud}
		},
		mapa: func(scan func(dest ...interface{}) error) (Esdeveniment, error) {
			var ev Esdeveniment
			err := scan(&ev.ID, &ev.Usuari, &ev.PersonaID, &ev.Tipus, &ev.Any, &ev.Ciutat, &ev.Pais, &ev.Latitud, &ev.Longitud)
			return ev, err
		},
	}}
}

// ReadPerUsuari retorna tots els esdeveniments propietat d'un usuari.
func (a EsdevenimentAccessor) ReadPerUsuari(e Executor, usuari string) ([]Esdeveniment, error) {
	stmt := formatPlaceholders(a.style, fmt.Sprintf(
		"SELECT %s FROM %s WHERE usuari = ?", strings.Join(a.columnes, ", "), a.taula))
	return a.queryModels(e, stmt, usuari)
}

// UsuariAccessor dóna accés als comptes d'usuari.
type UsuariAccessor struct {
	Accessor[Usuari]
}

func NewUsuariAccessor(style string) UsuariAccessor {
	return UsuariAccessor{Accessor[Usuari]{
		style:   style,
		taula:   "usuaris",
		clauCol: "usuari",
		columnes: []string{
			"usuari", "contrasenya", "correu", "nom", "cognoms", "genere", "persona_id",
		},
		valors: func(u Usuari) []interface{} {
			return []interface{}{u.Usuari, u.Contrasenya, u.Correu, u.Nom, u.Cognoms, u.Genere, u.PersonaID}
		},
		mapa: func(scan func(dest ...interface{}) error) (Usuari, error) {
			var u Usuari
			err := scan(&u.Usuari, &u.Contrasenya, &u.Correu, &u.Nom, &u.Cognoms, &u.Genere, &u.PersonaID)
			return u, err
		},
	}}
}

// UpdatePersonaID canvia (o buida, amb NullString buit) la persona arrel d'un
// usuari. No comprova RowsAffected: MySQL retorna 0 quan el valor no canvia,
// i el caller ja ha validat que l'usuari existeix.
func (a UsuariAccessor) UpdatePersonaID(e Executor, usuari string, personaID sql.NullString) error {
	stmt := formatPlaceholders(a.style, "UPDATE usuaris SET persona_id = ? WHERE usuari = ?")
	if _, err := e.Exec(stmt, personaID, usuari); err != nil {
		return fmt.Errorf("error actualitzant persona_id de %s: %w", usuari, err)
	}
	return nil
}

// TokenAccessor dóna accés als tokens de sessió.
type TokenAccessor struct {
	Accessor[TokenAuth]
}

func NewTokenAccessor(style string) TokenAccessor {
	return TokenAccessor{Accessor[TokenAuth]{
		style:    style,
		taula:    "tokens",
		clauCol:  "token",
		columnes: []string{"token", "usuari"},
		valors: func(t TokenAuth) []interface{} {
			return []interface{}{t.Token, t.Usuari}
		},
		mapa: func(scan func(dest ...interface{}) error) (TokenAuth, error) {
			var t TokenAuth
			err := scan(&t.Token, &t.Usuari)
			return t, err
		},
	}}
}

// DeleteTot buida una taula sencera. Compartit per la neteja global.
func DeleteTot(e Executor, taula string) error {
	if _, err := e.Exec("DELETE FROM " + taula); err != nil {
		return fmt.Errorf("error buidant %s: %w", taula, err)
	}
	return nil
}

// DeletePerUsuari esborra totes les files d'una taula que pertanyin a un usuari.
func DeletePerUsuari(e Executor, style, taula, usuari string) (int64, error) {
	stmt := formatPlaceholders(style, "DELETE FROM "+taula+" WHERE usuari = ?")
	res, err := e.Exec(stmt, usuari)
	if err != nil {
		return 0, fmt.Errorf("error esborrant de %s per %s: %w", taula, usuari, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
