package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/marcmoiagese/ArbreFamiliar/cnf"
	"github.com/marcmoiagese/ArbreFamiliar/core"
	"github.com/marcmoiagese/ArbreFamiliar/db"
)

func main() {
	cfg, err := cnf.LoadConfig("cnf/config.cfg")
	if err != nil {
		log.Fatal("No es pot llegir config.cfg: ", err)
	}
	ac := cnf.ParseConfig(cfg)
	core.SetLogLevel(ac.LogLevel)

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Fatal(err)
	}

	app := core.NewApp(cfg, database)
	defer app.Close()

	router := app.InitWebServer()

	fmt.Printf("Servidor corrent a http://localhost:%s\n", ac.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+ac.HTTPPort, core.SecureHeaders(router)))
}
