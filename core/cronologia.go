package core

import "math/rand"

// PoliticaCronologia fixa les finestres d'anys plausibles per fabricar
// naixements, matrimonis i defuncions. Les constants es poden ajustar però
// han de mantenir-se coherents entre elles: un progenitor neix sempre abans
// que el fill, es casa quan tots dos cònjuges són adults i mor després del
// naixement del fill i del matrimoni.
type PoliticaCronologia struct {
	EdatMinProgenitor  int // edat mínima del progenitor en néixer el fill
	EdatMaxProgenitor  int // edat màxima del progenitor en néixer el fill
	DiferenciaConjuges int // desviació màxima entre anys de naixement dels cònjuges
	EdatMinMatrimoni   int // edat mínima per casar-se
	EdatMaxVida        int // edat màxima de defunció
	EdatArrel          int // edat assumida de l'usuari arrel en el moment actual
}

func PoliticaPerDefecte() PoliticaCronologia {
	return PoliticaCronologia{
		EdatMinProgenitor:  13,
		EdatMaxProgenitor:  50,
		DiferenciaConjuges: 5,
		EdatMinMatrimoni:   18,
		EdatMaxVida:        95,
		EdatArrel:          25,
	}
}

// Finestra – interval tancat d'anys [Min, Max].
type Finestra struct {
	Min, Max int
}

// Mostra retorna un any uniforme dins la finestra. Si la finestra ha quedat
// degenerada (Max < Min per interseccions), retorna Min: la política sempre
// dóna un valor vàlid i mai falla.
func (f Finestra) Mostra(r *rand.Rand) int {
	if f.Max <= f.Min {
		return f.Min
	}
	return f.Min + r.Intn(f.Max-f.Min+1)
}

// Interseca retorna la intersecció de dues finestres. Pot quedar degenerada;
// Mostra ja ho tolera.
func (f Finestra) Interseca(g Finestra) Finestra {
	out := f
	if g.Min > out.Min {
		out.Min = g.Min
	}
	if g.Max < out.Max {
		out.Max = g.Max
	}
	return out
}

// AnyNaixementArrel retorna l'any de naixement assumit de la persona arrel.
func (p PoliticaCronologia) AnyNaixementArrel(anyActual int) int {
	return anyActual - p.EdatArrel
}

// NaixementProgenitor retorna la finestra d'anys de naixement vàlids per a un
// progenitor d'algú nascut l'any donat.
func (p PoliticaCronologia) NaixementProgenitor(anyNaixFill int) Finestra {
	return Finestra{
		Min: anyNaixFill - p.EdatMaxProgenitor,
		Max: anyNaixFill - p.EdatMinProgenitor,
	}
}

// NaixementConjuge retorna la finestra d'anys de naixement del cònjuge d'algú
// nascut l'any donat (diferència d'edat acotada i simètrica).
func (p PoliticaCronologia) NaixementConjuge(anyNaix int) Finestra {
	return Finestra{
		Min: anyNaix - p.DiferenciaConjuges,
		Max: anyNaix + p.DiferenciaConjuges,
	}
}

// Matrimoni retorna la finestra de l'any de casament d'una parella: després
// que tots dos siguin adults i, si és possible, abans del naixement del fill.
func (p PoliticaCronologia) Matrimoni(anyNaixA, anyNaixB, anyNaixFill int) Finestra {
	mesJove := anyNaixA
	if anyNaixB > mesJove {
		mesJove = anyNaixB
	}
	return Finestra{Min: mesJove + p.EdatMinMatrimoni, Max: anyNaixFill}
}

// Defuncio retorna la finestra de l'any de defunció d'un progenitor: mai
// abans del naixement del fill ni del matrimoni, i dins la vida màxima.
func (p PoliticaCronologia) Defuncio(anyNaix, anyMatrimoni, anyNaixFill int) Finestra {
	min := anyNaixFill
	if anyMatrimoni > min {
		min = anyMatrimoni
	}
	return Finestra{Min: min, Max: anyNaix + p.EdatMaxVida}
}
