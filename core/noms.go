package core

import (
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/marcmoiagese/ArbreFamiliar/db"
)

// FontNoms proporciona noms de pila i cognoms plausibles per a persones fabricades.
type FontNoms interface {
	NomDePila(r *rand.Rand, genere string) string
	Cognom(r *rand.Rand) string
}

// FontLlocs proporciona llocs per a esdeveniments fabricats.
type FontLlocs interface {
	Lloc(r *rand.Rand) Lloc
}

// Lloc – ciutat amb coordenades per situar un esdeveniment.
type Lloc struct {
	Ciutat   string  `yaml:"ciutat"`
	Pais     string  `yaml:"pais"`
	Latitud  float64 `yaml:"latitud"`
	Longitud float64 `yaml:"longitud"`
}

// DatasetNoms implementa FontNoms a partir de llistes en memòria.
type DatasetNoms struct {
	Masculins []string `yaml:"masculins"`
	Femenins  []string `yaml:"femenins"`
	Cognoms   []string `yaml:"cognoms"`
}

func (d *DatasetNoms) NomDePila(r *rand.Rand, genere string) string {
	if genere == db.GenereFemeni {
		return d.Femenins[r.Intn(len(d.Femenins))]
	}
	return d.Masculins[r.Intn(len(d.Masculins))]
}

func (d *DatasetNoms) Cognom(r *rand.Rand) string {
	return d.Cognoms[r.Intn(len(d.Cognoms))]
}

// DatasetLlocs implementa FontLlocs a partir d'una llista en memòria.
type DatasetLlocs struct {
	Llocs []Lloc `yaml:"llocs"`
}

func (d *DatasetLlocs) Lloc(r *rand.Rand) Lloc {
	return d.Llocs[r.Intn(len(d.Llocs))]
}

// nomsPerDefecte i llocsPerDefecte són el joc mínim compilat que fa servir el
// generador quan els fitxers de dades no hi són (per exemple als tests del core).
func nomsPerDefecte() *DatasetNoms {
	return &DatasetNoms{
		Masculins: []string{"Jaume", "Pere", "Josep", "Ramon", "Antoni", "Joan", "Francesc", "Miquel"},
		Femenins:  []string{"Maria", "Montserrat", "Teresa", "Rosa", "Núria", "Carme", "Dolors", "Mercè"},
		Cognoms:   []string{"Puig", "Vila", "Serra", "Ferrer", "Soler", "Roca", "Bosch", "Camps"},
	}
}

func llocsPerDefecte() *DatasetLlocs {
	return &DatasetLlocs{Llocs: []Lloc{
		{Ciutat: "Linyola", Pais: "ES", Latitud: 41.7104, Longitud: 0.9133},
		{Ciutat: "Balaguer", Pais: "ES", Latitud: 41.7907, Longitud: 0.8064},
		{Ciutat: "Lleida", Pais: "ES", Latitud: 41.6176, Longitud: 0.6200},
		{Ciutat: "Tàrrega", Pais: "ES", Latitud: 41.6469, Longitud: 1.1394},
		{Ciutat: "Cervera", Pais: "ES", Latitud: 41.6709, Longitud: 1.2721},
	}}
}

// CarregaFontsDades llegeix els datasets YAML del directori indicat. Si un
// fitxer falta o no es pot llegir, es fa servir el joc compilat per defecte.
func CarregaFontsDades(dir string) (FontNoms, FontLlocs) {
	noms := nomsPerDefecte()
	if data, err := os.ReadFile(filepath.Join(dir, "noms.yml")); err == nil {
		var carregat DatasetNoms
		if err := yaml.Unmarshal(data, &carregat); err != nil {
			Errorf("error deserialitzant noms.yml: %v", err)
		} else if len(carregat.Masculins) > 0 && len(carregat.Femenins) > 0 && len(carregat.Cognoms) > 0 {
			noms = &carregat
		}
	}

	llocs := llocsPerDefecte()
	if data, err := os.ReadFile(filepath.Join(dir, "llocs.yml")); err == nil {
		var carregat DatasetLlocs
		if err := yaml.Unmarshal(data, &carregat); err != nil {
			Errorf("error deserialitzant llocs.yml: %v", err)
		} else if len(carregat.Llocs) > 0 {
			llocs = &carregat
		}
	}

	return noms, llocs
}
