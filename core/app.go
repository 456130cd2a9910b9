package core

import (
	"time"

	"github.com/marcmoiagese/ArbreFamiliar/cnf"
	"github.com/marcmoiagese/ArbreFamiliar/db"
)

// App encapsula dependències compartides per evitar reobrir recursos per petició.
type App struct {
	Config map[string]string
	Cfg    cnf.AppConfig
	DB     db.DB

	// Fonts de dades del generador. Intercanviables als tests.
	Noms     FontNoms
	Llocs    FontLlocs
	Politica PoliticaCronologia

	// Llavor retorna la llavor del generador d'atzar d'una petició d'omplir.
	// Cada petició crea el seu propi *rand.Rand; així dues regeneracions
	// concurrents no comparteixen estat i els tests poden fixar la llavor.
	Llavor func() int64

	persones      db.PersonaAccessor
	esdeveniments db.EsdevenimentAccessor
	usuaris       db.UsuariAccessor
	tokens        db.TokenAccessor
}

func NewApp(cfg map[string]string, database db.DB) *App {
	ac := cnf.ParseConfig(cfg)
	noms, llocs := CarregaFontsDades(ac.DataDir)
	style := database.Style()
	return &App{
		Config:        cfg,
		Cfg:           ac,
		DB:            database,
		Noms:          noms,
		Llocs:         llocs,
		Politica:      PoliticaPerDefecte(),
		Llavor:        func() int64 { return time.Now().UnixNano() },
		persones:      db.NewPersonaAccessor(style),
		esdeveniments: db.NewEsdevenimentAccessor(style),
		usuaris:       db.NewUsuariAccessor(style),
		tokens:        db.NewTokenAccessor(style),
	}
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
