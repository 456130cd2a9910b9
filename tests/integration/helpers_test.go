package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/marcmoiagese/ArbreFamiliar/core"
	"github.com/marcmoiagese/ArbreFamiliar/db"
)

func init() {
	// Els camins relatius (db/*.sql, data/) resolen des de l'arrel del repositori.
	_ = os.Chdir("../..")
}

// newServerDeTest aixeca el servei sencer sobre SQLite in-memory i retorna
// el servidor HTTP de proves ja escoltant.
func newServerDeTest(t *testing.T) (*core.App, *httptest.Server) {
	t.Helper()

	cfg := map[string]string{
		"DB_ENGINE":   "sqlite",
		"DB_PATH":     ":memory:",
		"ENV":         "test",
		"LOG_LEVEL":   "silent",
		"RECREADB":    "true",
		"GENERACIONS": "2",
	}
	database, err := db.NewDB(cfg)
	if err != nil {
		t.Fatalf("db.NewDB: %v", err)
	}
	app := core.NewApp(cfg, database)
	app.Llavor = func() int64 { return 42 }

	srv := httptest.NewServer(core.SecureHeaders(app.InitWebServer()))
	t.Cleanup(func() {
		srv.Close()
		app.Close()
	})
	return app, srv
}

// postJSON fa un POST amb cos JSON i descodifica la resposta dins out.
func postJSON(t *testing.T, srv *httptest.Server, ruta, token string, cos, out interface{}) int {
	t.Helper()

	var body io.Reader
	if cos != nil {
		b, err := json.Marshal(cos)
		if err != nil {
			t.Fatalf("marshal del cos: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(http.MethodPost, srv.URL+ruta, body)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return ferPeticio(t, req, out)
}

// getJSON fa un GET autenticat i descodifica la resposta dins out.
func getJSON(t *testing.T, srv *httptest.Server, ruta, token string, out interface{}) int {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+ruta, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return ferPeticio(t, req, out)
}

func ferPeticio(t *testing.T, req *http.Request, out interface{}) int {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("petició %s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("descodificant resposta de %s: %v", req.URL.Path, err)
		}
	}
	return resp.StatusCode
}

type respostaSessio struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	Usuari    string `json:"usuari"`
	PersonaID string `json:"persona_id"`
	Message   string `json:"message"`
}

type respostaSimple struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// registraPerHTTP crea un compte a través de l'API i retorna la sessió.
func registraPerHTTP(t *testing.T, srv *httptest.Server, usuari string) respostaSessio {
	t.Helper()

	var sessio respostaSessio
	status := postJSON(t, srv, "/usuari/registre", "", map[string]string{
		"usuari":      usuari,
		"contrasenya": "secret123",
		"correu":      usuari + "@exemple.cat",
		"nom":         "Teresa",
		"cognoms":     "Puig",
		"genere":      "f",
	}, &sessio)
	if status != http.StatusOK || !sessio.Success {
		t.Fatalf("registre de %s: status %d, resposta %+v", usuari, status, sessio)
	}
	return sessio
}
