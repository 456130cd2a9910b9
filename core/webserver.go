package core

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"

	"github.com/marcmoiagese/ArbreFamiliar/db"
)

// InitWebServer munta el router amb totes les rutes del servei.
func (a *App) InitWebServer() *httprouter.Router {
	router := httprouter.New()

	router.POST("/usuari/registre", a.handleRegistre)
	router.POST("/usuari/login", a.handleLogin)
	router.POST("/omplir/:usuari", a.handleOmplir)
	router.POST("/omplir/:usuari/:generacions", a.handleOmplir)
	router.POST("/carrega", a.handleCarrega)
	router.POST("/neteja", a.handleNeteja)
	router.GET("/persona", a.handlePersones)
	router.GET("/persona/:id", a.handlePersona)
	router.GET("/esdeveniment", a.handleEsdeveniments)
	router.GET("/esdeveniment/:id", a.handleEsdeveniment)

	return router
}

// SecureHeaders afegeix capçaleres de seguretat a totes les respostes.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// ---------------------------------------------------------------------------
// Tipus de resposta i ajudes JSON
// ---------------------------------------------------------------------------

type respostaAPI struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type respostaSessio struct {
	Success   bool   `json:"success"`
	Token     string `json:"token,omitempty"`
	Usuari    string `json:"usuari,omitempty"`
	PersonaID string `json:"persona_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

func respon(w http.ResponseWriter, status int, cos interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(cos)
}

// responError converteix la taxonomia d'errors del core en una resposta
// {success:false, message}. El missatge descriu la categoria; mai exposa
// traces ni identificadors interns. La causa sencera va al log.
func responError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	missatge := "error intern del servidor"
	var ev *ErrorValidacio
	var ent *ErrorNoTrobat
	var ec *ErrorConflicte
	var ee *ErrorEmmagatzematge
	switch {
	case errors.As(err, &ev):
		status = http.StatusBadRequest
		missatge = err.Error()
	case errors.As(err, &ent):
		status = http.StatusNotFound
		missatge = err.Error()
	case errors.As(err, &ec):
		status = http.StatusConflict
		missatge = err.Error()
	case errors.As(err, &ee):
		// l'error del motor pot portar cadenes de connexió o noms de taula
		missatge = "error d'emmagatzematge durant " + ee.Etapa
	}
	Errorf("resposta d'error (%d): %v", status, err)
	respon(w, status, respostaAPI{Success: false, Message: missatge})
}

// ---------------------------------------------------------------------------
// Tipus de transport (JSON pla, sense sql.NullString ni hashos)
// ---------------------------------------------------------------------------

type personaJSON struct {
	ID        string `json:"id"`
	Usuari    string `json:"usuari"`
	Nom       string `json:"nom"`
	Cognoms   string `json:"cognoms"`
	Genere    string `json:"genere"`
	PareID    string `json:"pare_id,omitempty"`
	MareID    string `json:"mare_id,omitempty"`
	ConjugeID string `json:"conjuge_id,omitempty"`
}

func personaAJSON(p db.Persona) personaJSON {
	return personaJSON{
		ID:        p.ID,
		Usuari:    p.Usuari,
		Nom:       p.Nom,
		Cognoms:   p.Cognoms,
		Genere:    p.Genere,
		PareID:    p.PareID.String,
		MareID:    p.MareID.String,
		ConjugeID: p.ConjugeID.String,
	}
}

func personaDeJSON(p personaJSON) db.Persona {
	return db.Persona{
		ID:        p.ID,
		Usuari:    p.Usuari,
		Nom:       p.Nom,
		Cognoms:   p.Cognoms,
		Genere:    p.Genere,
		PareID:    nullString(p.PareID),
		MareID:    nullString(p.MareID),
		ConjugeID: nullString(p.ConjugeID),
	}
}

type esdevenimentJSON struct {
	ID        string  `json:"id"`
	Usuari    string  `json:"usuari"`
	PersonaID string  `json:"persona_id"`
	Tipus     string  `json:"tipus"`
	Any       int     `json:"any"`
	Ciutat    string  `json:"ciutat"`
	Pais      string  `json:"pais"`
	Latitud   float64 `json:"latitud"`
	Longitud  float64 `json:"longitud"`
}

func esdevenimentAJSON(ev db.Esdeveniment) esdevenimentJSON {
	return esdevenimentJSON{
		ID:        ev.ID,
		Usuari:    ev.Usuari,
		PersonaID: ev.PersonaID,
		Tipus:     ev.Tipus,
		Any:       ev.Any,
		Ciutat:    ev.Ciutat,
		Pais:      ev.Pais,
		Latitud:   ev.Latitud,
		Longitud:  ev.Longitud,
	}
}

func esdevenimentDeJSON(ev esdevenimentJSON) db.Esdeveniment {
	return db.Esdeveniment{
		ID:        ev.ID,
		Usuari:    ev.Usuari,
		PersonaID: ev.PersonaID,
		Tipus:     ev.Tipus,
		Any:       ev.Any,
		Ciutat:    ev.Ciutat,
		Pais:      ev.Pais,
		Latitud:   ev.Latitud,
		Longitud:  ev.Longitud,
	}
}

type usuariJSON struct {
	Usuari      string `json:"usuari"`
	Contrasenya string `json:"contrasenya"`
	Correu      string `json:"correu"`
	Nom         string `json:"nom"`
	Cognoms     string `json:"cognoms"`
	Genere      string `json:"genere"`
	PersonaID   string `json:"persona_id,omitempty"`
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func (a *App) handleRegistre(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p PeticioRegistre
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		responError(w, &ErrorValidacio{Motiu: "cos de la petició invàlid"})
		return
	}
	sessio, err := a.RegistraUsuari(p)
	if err != nil {
		responError(w, err)
		return
	}
	respon(w, http.StatusOK, respostaSessio{
		Success:   true,
		Token:     sessio.Token,
		Usuari:    sessio.Usuari,
		PersonaID: sessio.PersonaID,
	})
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p struct {
		Usuari      string `json:"usuari"`
		Contrasenya string `json:"contrasenya"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		responError(w, &ErrorValidacio{Motiu: "cos de la petició invàlid"})
		return
	}
	sessio, err := a.IniciaSessio(p.Usuari, p.Contrasenya)
	if err != nil {
		responError(w, err)
		return
	}
	respon(w, http.StatusOK, respostaSessio{
		Success:   true,
		Token:     sessio.Token,
		Usuari:    sessio.Usuari,
		PersonaID: sessio.PersonaID,
	})
}

func (a *App) handleOmplir(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	usuari := ps.ByName("usuari")
	generacions := a.Cfg.Generacions
	if v := ps.ByName("generacions"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			responError(w, &ErrorValidacio{Motiu: "les generacions han de ser un enter"})
			return
		}
		generacions = n
	}

	resultat, err := a.OmplirArbre(usuari, generacions)
	if err != nil {
		responError(w, err)
		return
	}
	respon(w, http.StatusOK, respostaAPI{Success: true, Message: resultat.Missatge()})
}

func (a *App) handleCarrega(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p struct {
		Usuaris       []usuariJSON       `json:"usuaris"`
		Persones      []personaJSON      `json:"persones"`
		Esdeveniments []esdevenimentJSON `json:"esdeveniments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		responError(w, &ErrorValidacio{Motiu: "cos de la petició invàlid"})
		return
	}

	lot := LotCarrega{}
	for _, uj := range p.Usuaris {
		hash, err := bcrypt.GenerateFromPassword([]byte(uj.Contrasenya), bcrypt.DefaultCost)
		if err != nil {
			responError(w, &ErrorValidacio{Motiu: "contrasenya invàlida a la càrrega"})
			return
		}
		lot.Usuaris = append(lot.Usuaris, db.Usuari{
			Usuari:      uj.Usuari,
			Contrasenya: hash,
			Correu:      uj.Correu,
			Nom:         uj.Nom,
			Cognoms:     uj.Cognoms,
			Genere:      uj.Genere,
			PersonaID:   nullString(uj.PersonaID),
		})
	}
	for _, pj := range p.Persones {
		lot.Persones = append(lot.Persones, personaDeJSON(pj))
	}
	for _, ej := range p.Esdeveniments {
		lot.Esdeveniments = append(lot.Esdeveniments, esdevenimentDeJSON(ej))
	}

	if err := a.CarregaMassiva(lot); err != nil {
		responError(w, err)
		return
	}
	respon(w, http.StatusOK, respostaAPI{Success: true,
		Message: "Càrrega massiva completada correctament."})
}

func (a *App) handleNeteja(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := a.NetejaTot(); err != nil {
		responError(w, err)
		return
	}
	respon(w, http.StatusOK, respostaAPI{Success: true, Message: "S'ha buidat la base de dades."})
}

func (a *App) handlePersona(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	p, err := a.PersonaPerID(r.Header.Get("Authorization"), ps.ByName("id"))
	if err != nil {
		responError(w, err)
		return
	}
	respon(w, http.StatusOK, struct {
		Success bool `json:"success"`
		personaJSON
	}{true, personaAJSON(*p)})
}

func (a *App) handlePersones(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	persones, err := a.PersonesDeUsuari(r.Header.Get("Authorization"))
	if err != nil {
		responError(w, err)
		return
	}
	llista := make([]personaJSON, 0, len(persones))
	for _, p := range persones {
		llista = append(llista, personaAJSON(p))
	}
	respon(w, http.StatusOK, struct {
		Success bool          `json:"success"`
		Dades   []personaJSON `json:"dades"`
	}{true, llista})
}

func (a *App) handleEsdeveniment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ev, err := a.EsdevenimentPerID(r.Header.Get("Authorization"), ps.ByName("id"))
	if err != nil {
		responError(w, err)
		return
	}
	respon(w, http.StatusOK, struct {
		Success bool `json:"success"`
		esdevenimentJSON
	}{true, esdevenimentAJSON(*ev)})
}

func (a *App) handleEsdeveniments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	esdeveniments, err := a.EsdevenimentsDeUsuari(r.Header.Get("Authorization"))
	if err != nil {
		responError(w, err)
		return
	}
	llista := make([]esdevenimentJSON, 0, len(esdeveniments))
	for _, ev := range esdeveniments {
		llista = append(llista, esdevenimentAJSON(ev))
	}
	respon(w, http.StatusOK, struct {
		Success bool               `json:"success"`
		Dades   []esdevenimentJSON `json:"dades"`
	}{true, llista})
}
