package core

import (
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/marcmoiagese/ArbreFamiliar/db"
)

// SessioIniciada – resultat de registrar-se o d'iniciar sessió.
type SessioIniciada struct {
	Token     string
	Usuari    string
	PersonaID string
}

// PeticioRegistre – camps del formulari de registre.
type PeticioRegistre struct {
	Usuari      string `json:"usuari"`
	Contrasenya string `json:"contrasenya"`
	Correu      string `json:"correu"`
	Nom         string `json:"nom"`
	Cognoms     string `json:"cognoms"`
	Genere      string `json:"genere"`
}

// RegistraUsuari crea el compte, li fabrica l'arbre per defecte i obre sessió.
func (a *App) RegistraUsuari(p PeticioRegistre) (SessioIniciada, error) {
	if p.Usuari == "" || p.Contrasenya == "" || p.Nom == "" || p.Cognoms == "" {
		return SessioIniciada{}, &ErrorValidacio{Motiu: "falten camps obligatoris al registre"}
	}
	if p.Genere != db.GenereMasculi && p.Genere != db.GenereFemeni {
		return SessioIniciada{}, &ErrorValidacio{Motiu: "el gènere ha de ser 'm' o 'f'"}
	}
	if _, err := mail.ParseAddress(p.Correu); err != nil {
		return SessioIniciada{}, &ErrorValidacio{Motiu: "correu electrònic invàlid"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Contrasenya), bcrypt.DefaultCost)
	if err != nil {
		return SessioIniciada{}, fmt.Errorf("error generant hash: %w", err)
	}

	u := db.Usuari{
		Usuari:      p.Usuari,
		Contrasenya: hash,
		Correu:      p.Correu,
		Nom:         p.Nom,
		Cognoms:     p.Cognoms,
		Genere:      p.Genere,
	}
	if err := a.usuaris.CreateAll(a.DB.SQL(), []db.Usuari{u}); err != nil {
		return SessioIniciada{}, errorDeBD("el registre", err)
	}
	Infof("Usuari creat correctament: %s", u.Usuari)

	// El compte nou arrenca amb l'arbre per defecte ja fabricat.
	if _, err := a.OmplirArbre(u.Usuari, a.Cfg.Generacions); err != nil {
		return SessioIniciada{}, err
	}

	return a.obreSessio(u.Usuari)
}

// IniciaSessio valida les credencials i emet un token nou.
func (a *App) IniciaSessio(usuari, contrasenya string) (SessioIniciada, error) {
	u, err := a.usuaris.ReadByKey(a.DB.SQL(), usuari)
	if err != nil {
		return SessioIniciada{}, errorDeBD("l'inici de sessió", err)
	}
	if u == nil {
		return SessioIniciada{}, &ErrorValidacio{Motiu: "usuari o contrasenya incorrectes"}
	}
	if err := bcrypt.CompareHashAndPassword(u.Contrasenya, []byte(contrasenya)); err != nil {
		return SessioIniciada{}, &ErrorValidacio{Motiu: "usuari o contrasenya incorrectes"}
	}
	return a.obreSessio(u.Usuari)
}

// UsuariPerToken retorna l'usuari amo d'un token, o ErrorNoTrobat si el token
// no correspon a cap sessió.
func (a *App) UsuariPerToken(token string) (*db.Usuari, error) {
	if token == "" {
		return nil, &ErrorValidacio{Motiu: "cal un token d'autorització"}
	}
	t, err := a.tokens.ReadByKey(a.DB.SQL(), token)
	if err != nil {
		return nil, errorDeBD("la validació del token", err)
	}
	if t == nil {
		return nil, &ErrorNoTrobat{Motiu: "el token no correspon a cap sessió"}
	}
	u, err := a.usuaris.ReadByKey(a.DB.SQL(), t.Usuari)
	if err != nil {
		return nil, errorDeBD("la validació del token", err)
	}
	if u == nil {
		return nil, &ErrorNoTrobat{Motiu: "el token apunta a un usuari inexistent"}
	}
	return u, nil
}

// obreSessio emet un token opac nou per a l'usuari i retorna la seva persona arrel.
func (a *App) obreSessio(usuari string) (SessioIniciada, error) {
	t := db.TokenAuth{Token: uuid.NewString(), Usuari: usuari}
	if err := a.tokens.CreateAll(a.DB.SQL(), []db.TokenAuth{t}); err != nil {
		return SessioIniciada{}, errorDeBD("l'emissió del token", err)
	}

	u, err := a.usuaris.ReadByKey(a.DB.SQL(), usuari)
	if err != nil {
		return SessioIniciada{}, errorDeBD("l'emissió del token", err)
	}
	if u == nil {
		return SessioIniciada{}, &ErrorNoTrobat{Motiu: fmt.Sprintf("l'usuari %q no existeix", usuari)}
	}
	return SessioIniciada{Token: t.Token, Usuari: usuari, PersonaID: u.PersonaID.String}, nil
}
