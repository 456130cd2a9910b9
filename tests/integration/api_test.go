package integration

import (
	"net/http"
	"testing"
)

func TestRegistreILoginPerHTTP(t *testing.T) {
	_, srv := newServerDeTest(t)

	sessio := registraPerHTTP(t, srv, "mteresa")
	if sessio.Token == "" || sessio.PersonaID == "" {
		t.Fatalf("registre sense token o persona arrel: %+v", sessio)
	}

	var login respostaSessio
	status := postJSON(t, srv, "/usuari/login", "", map[string]string{
		"usuari": "mteresa", "contrasenya": "secret123",
	}, &login)
	if status != http.StatusOK || login.Token == "" {
		t.Fatalf("login: status %d, resposta %+v", status, login)
	}
	if login.Token == sessio.Token {
		t.Errorf("el login hauria d'emetre un token nou")
	}

	var dolent respostaSimple
	status = postJSON(t, srv, "/usuari/login", "", map[string]string{
		"usuari": "mteresa", "contrasenya": "dolenta",
	}, &dolent)
	if status != http.StatusBadRequest || dolent.Success {
		t.Errorf("login amb contrasenya dolenta: status %d, resposta %+v", status, dolent)
	}

	var duplicat respostaSimple
	status = postJSON(t, srv, "/usuari/registre", "", map[string]string{
		"usuari": "mteresa", "contrasenya": "x", "correu": "x@exemple.cat",
		"nom": "X", "cognoms": "Y", "genere": "m",
	}, &duplicat)
	if status != http.StatusConflict {
		t.Errorf("registre duplicat: esperava 409, tinc %d (%+v)", status, duplicat)
	}
}

func TestOmplirPerHTTP(t *testing.T) {
	_, srv := newServerDeTest(t)

	sessio := registraPerHTTP(t, srv, "mteresa")

	var resposta respostaSimple
	status := postJSON(t, srv, "/omplir/mteresa/2", "", nil, &resposta)
	if status != http.StatusOK || !resposta.Success {
		t.Fatalf("omplir: status %d, resposta %+v", status, resposta)
	}
	if vol := "S'han afegit 7 persones i 19 esdeveniments a la base de dades."; resposta.Message != vol {
		t.Errorf("missatge inesperat: %q", resposta.Message)
	}

	var persones struct {
		Success bool `json:"success"`
		Dades   []struct {
			ID     string `json:"id"`
			Usuari string `json:"usuari"`
		} `json:"dades"`
	}
	status = getJSON(t, srv, "/persona", sessio.Token, &persones)
	if status != http.StatusOK || len(persones.Dades) != 7 {
		t.Fatalf("GET /persona: status %d, %d persones", status, len(persones.Dades))
	}

	var una struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
		Nom     string `json:"nom"`
	}
	status = getJSON(t, srv, "/persona/"+persones.Dades[0].ID, sessio.Token, &una)
	if status != http.StatusOK || una.ID != persones.Dades[0].ID {
		t.Fatalf("GET /persona/:id: status %d, resposta %+v", status, una)
	}

	var esdeveniments struct {
		Success bool `json:"success"`
		Dades   []struct {
			ID    string `json:"id"`
			Tipus string `json:"tipus"`
		} `json:"dades"`
	}
	status = getJSON(t, srv, "/esdeveniment", sessio.Token, &esdeveniments)
	if status != http.StatusOK || len(esdeveniments.Dades) != 19 {
		t.Fatalf("GET /esdeveniment: status %d, %d esdeveniments", status, len(esdeveniments.Dades))
	}
}

func TestOmplirPerHTTPErrors(t *testing.T) {
	_, srv := newServerDeTest(t)

	registraPerHTTP(t, srv, "mteresa")

	var resposta respostaSimple
	if status := postJSON(t, srv, "/omplir/fantasma/2", "", nil, &resposta); status != http.StatusNotFound {
		t.Errorf("omplir d'un usuari inexistent: esperava 404, tinc %d", status)
	}
	if status := postJSON(t, srv, "/omplir/mteresa/abc", "", nil, &resposta); status != http.StatusBadRequest {
		t.Errorf("generacions no numèriques: esperava 400, tinc %d", status)
	}
	if status := postJSON(t, srv, "/omplir/mteresa/-1", "", nil, &resposta); status != http.StatusBadRequest {
		t.Errorf("generacions negatives: esperava 400, tinc %d", status)
	}
}

func TestConsultesAutoritzadesPerHTTP(t *testing.T) {
	_, srv := newServerDeTest(t)

	sessioA := registraPerHTTP(t, srv, "usuaria")
	sessioB := registraPerHTTP(t, srv, "usuarib")

	var resposta respostaSimple
	if status := getJSON(t, srv, "/persona", "", &resposta); status != http.StatusBadRequest {
		t.Errorf("sense token: esperava 400, tinc %d", status)
	}
	if status := getJSON(t, srv, "/persona", "token-fals", &resposta); status != http.StatusNotFound {
		t.Errorf("token desconegut: esperava 404, tinc %d", status)
	}
	if status := getJSON(t, srv, "/persona/"+sessioB.PersonaID, sessioA.Token, &resposta); status != http.StatusNotFound {
		t.Errorf("persona d'un altre arbre: esperava 404, tinc %d", status)
	}
}

func TestCarregaINetejaPerHTTP(t *testing.T) {
	_, srv := newServerDeTest(t)

	registraPerHTTP(t, srv, "mteresa")

	var resposta respostaSimple
	status := postJSON(t, srv, "/carrega", "", map[string]interface{}{
		"usuaris": []map[string]string{{
			"usuari":      "importat",
			"contrasenya": "clarissima",
			"correu":      "importat@exemple.cat",
			"nom":         "Josep",
			"cognoms":     "Serra",
			"genere":      "m",
			"persona_id":  "p1",
		}},
		"persones": []map[string]string{
			{"id": "p1", "usuari": "importat", "nom": "Josep", "cognoms": "Serra", "genere": "m"},
		},
		"esdeveniments": []map[string]interface{}{
			{"id": "e1", "usuari": "importat", "persona_id": "p1", "tipus": "naixement",
				"any": 1990, "ciutat": "Lleida", "pais": "ES"},
		},
	}, &resposta)
	if status != http.StatusOK || !resposta.Success {
		t.Fatalf("carrega: status %d, resposta %+v", status, resposta)
	}

	// la contrasenya del lot era en clar: el login contra el hash ha de funcionar
	var login respostaSessio
	status = postJSON(t, srv, "/usuari/login", "", map[string]string{
		"usuari": "importat", "contrasenya": "clarissima",
	}, &login)
	if status != http.StatusOK || login.Token == "" {
		t.Fatalf("login de l'usuari importat: status %d, resposta %+v", status, login)
	}
	if login.PersonaID != "p1" {
		t.Errorf("persona arrel de l'importat: %q, esperava p1", login.PersonaID)
	}

	// ...i l'usuari d'abans de la càrrega ja no hi és
	status = postJSON(t, srv, "/usuari/login", "", map[string]string{
		"usuari": "mteresa", "contrasenya": "secret123",
	}, &resposta)
	if status != http.StatusBadRequest {
		t.Errorf("login de l'usuari escombrat: esperava 400, tinc %d", status)
	}

	if status := postJSON(t, srv, "/neteja", "", nil, &resposta); status != http.StatusOK {
		t.Fatalf("neteja: status %d", status)
	}
	if status := getJSON(t, srv, "/persona", login.Token, &resposta); status != http.StatusNotFound {
		t.Errorf("després de netejar el token no val: esperava 404, tinc %d", status)
	}
}

func TestCapcaleresDeSeguretat(t *testing.T) {
	_, srv := newServerDeTest(t)

	resp, err := http.Get(srv.URL + "/persona")
	if err != nil {
		t.Fatalf("GET /persona: %v", err)
	}
	defer resp.Body.Close()

	if v := resp.Header.Get("X-Content-Type-Options"); v != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", v)
	}
	if v := resp.Header.Get("X-Frame-Options"); v != "DENY" {
		t.Errorf("X-Frame-Options = %q", v)
	}
}
