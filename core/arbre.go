package core

import (
	"database/sql"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/marcmoiagese/ArbreFamiliar/db"
)

// Lot – conjunt en memòria de persones i esdeveniments acabats de fabricar,
// pendents de persistir d'una sola peça.
type Lot struct {
	Persones      []db.Persona
	Esdeveniments []db.Esdeveniment
}

// GeneradorArbre fabrica arbres d'avantpassats en memòria. No fa cap E/S:
// noms, llocs i atzar li arriben injectats, i el resultat és un Lot que el
// caller persisteix (o descarta) sencer.
//
// Decisions documentades:
//   - la persona arrel no rep cònjuge fabricat; amb generacions = 0 només es
//     regenera l'arrel i el seu naixement ("nomes avantpassats")
//   - el matrimoni es registra un cop per cònjuge (dos esdeveniments amb el
//     mateix any i lloc)
//   - tot avantpassat fabricat rep sempre esdeveniment de defunció; només
//     l'arrel en queda sense
type GeneradorArbre struct {
	Noms     FontNoms
	Llocs    FontLlocs
	Politica PoliticaCronologia
	Rand     *rand.Rand

	// AnyActual permet fixar el present als tests; 0 vol dir "ara".
	AnyActual int
}

// pendent – element de la pila de treball: persona que potser necessita
// progenitors, amb el seu any de naixement i la profunditat que ocupa.
type pendent struct {
	idx         int // índex dins lot.Persones
	anyNaix     int
	profunditat int
}

// Genera construeix l'arbre d'avantpassats de la persona arrel. L'arrel
// mateixa (amb el seu naixement) forma part del Lot retornat. L'expansió és
// iterativa amb una pila de treball: cap límit de recursió per a generacions
// grans. Les generacions negatives es tracten aigües amunt; aquí un valor
// negatiu simplement no fabrica res per sobre de l'arrel.
func (g *GeneradorArbre) Genera(arrel db.Persona, generacions int) Lot {
	lot := Lot{Persones: []db.Persona{arrel}}

	anyActual := g.AnyActual
	if anyActual == 0 {
		anyActual = time.Now().Year()
	}
	anyNaixArrel := g.Politica.AnyNaixementArrel(anyActual)
	lot.Esdeveniments = append(lot.Esdeveniments,
		g.nouEsdeveniment(arrel, db.TipusNaixement, anyNaixArrel))

	pila := []pendent{{idx: 0, anyNaix: anyNaixArrel, profunditat: 0}}
	for len(pila) > 0 {
		p := pila[len(pila)-1]
		pila = pila[:len(pila)-1]
		if p.profunditat >= generacions {
			continue
		}

		fill := lot.Persones[p.idx]

		// El pare continua la línia de cognom del fill; la mare rep cognom propi.
		pare := db.Persona{
			ID:      uuid.NewString(),
			Usuari:  fill.Usuari,
			Nom:     g.Noms.NomDePila(g.Rand, db.GenereMasculi),
			Cognoms: fill.Cognoms,
			Genere:  db.GenereMasculi,
		}
		mare := db.Persona{
			ID:      uuid.NewString(),
			Usuari:  fill.Usuari,
			Nom:     g.Noms.NomDePila(g.Rand, db.GenereFemeni),
			Cognoms: g.Noms.Cognom(g.Rand),
			Genere:  db.GenereFemeni,
		}
		pare.ConjugeID = sql.NullString{String: mare.ID, Valid: true}
		mare.ConjugeID = sql.NullString{String: pare.ID, Valid: true}

		lot.Persones[p.idx].PareID = sql.NullString{String: pare.ID, Valid: true}
		lot.Persones[p.idx].MareID = sql.NullString{String: mare.ID, Valid: true}

		// Cronologia: naixements dins la finestra de progenitor, la mare a més
		// dins la finestra de cònjuge del pare; matrimoni i defuncions coherents.
		fProgenitor := g.Politica.NaixementProgenitor(p.anyNaix)
		naixPare := fProgenitor.Mostra(g.Rand)
		naixMare := g.Politica.NaixementConjuge(naixPare).Interseca(fProgenitor).Mostra(g.Rand)
		anyMatrimoni := g.Politica.Matrimoni(naixPare, naixMare, p.anyNaix).Mostra(g.Rand)
		defuncioPare := g.Politica.Defuncio(naixPare, anyMatrimoni, p.anyNaix).Mostra(g.Rand)
		defuncioMare := g.Politica.Defuncio(naixMare, anyMatrimoni, p.anyNaix).Mostra(g.Rand)

		llocMatrimoni := g.Llocs.Lloc(g.Rand)
		lot.Esdeveniments = append(lot.Esdeveniments,
			g.nouEsdeveniment(pare, db.TipusNaixement, naixPare),
			g.nouEsdevenimentALloc(pare, db.TipusMatrimoni, anyMatrimoni, llocMatrimoni),
			g.nouEsdeveniment(pare, db.TipusDefuncio, defuncioPare),
			g.nouEsdeveniment(mare, db.TipusNaixement, naixMare),
			g.nouEsdevenimentALloc(mare, db.TipusMatrimoni, anyMatrimoni, llocMatrimoni),
			g.nouEsdeveniment(mare, db.TipusDefuncio, defuncioMare),
		)

		lot.Persones = append(lot.Persones, pare, mare)
		idxPare := len(lot.Persones) - 2
		idxMare := len(lot.Persones) - 1
		pila = append(pila,
			pendent{idx: idxPare, anyNaix: naixPare, profunditat: p.profunditat + 1},
			pendent{idx: idxMare, anyNaix: naixMare, profunditat: p.profunditat + 1},
		)
	}

	return lot
}

func (g *GeneradorArbre) nouEsdeveniment(p db.Persona, tipus string, anyActe int) db.Esdeveniment {
	return g.nouEsdevenimentALloc(p, tipus, anyActe, g.Llocs.Lloc(g.Rand))
}

func (g *GeneradorArbre) nouEsdevenimentALloc(p db.Persona, tipus string, anyActe int, lloc Lloc) db.Esdeveniment {
	return db.Esdeveniment{
		ID:        uuid.NewString(),
		Usuari:    p.Usuari,
		PersonaID: p.ID,
		Tipus:     tipus,
		Any:       anyActe,
		Ciutat:    lloc.Ciutat,
		Pais:      lloc.Pais,
		Latitud:   lloc.Latitud,
		Longitud:  lloc.Longitud,
	}
}
