// Package classify maps free-text search queries from the voice assistant to
// a fixed set of news categories, either through the hosted classifier or the
// keyword fallback.
package classify

import (
	"regexp"
	"sync"

	"github.com/wiamouali-star/voice-acc-app/internal/textutil"
)

// Category is one of the fixed classification labels. Labels are lowercase
// and accent-free so they survive a one-word model reply unchanged.
type Category string

const (
	Actualite     Category = "actualite"
	Monde         Category = "monde"
	Politique     Category = "politique"
	Economie      Category = "economie"
	Finance       Category = "finance"
	Sport         Category = "sport"
	Technologie   Category = "technologie"
	Science       Category = "science"
	Sante         Category = "sante"
	Culture       Category = "culture"
	Musique       Category = "musique"
	Cinema        Category = "cinema"
	Environnement Category = "environnement"
	Education     Category = "education"
	Justice       Category = "justice"
	Societe       Category = "societe"
	Meteo         Category = "meteo"
	Voyage        Category = "voyage"
	Cuisine       Category = "cuisine"
	Mode          Category = "mode"
	Automobile    Category = "automobile"
	Immobilier    Category = "immobilier"
	Emploi        Category = "emploi"
	Jeux          Category = "jeux"
	Histoire      Category = "histoire"

	// Autre is the catch-all; every classification path ends here when
	// nothing else matches.
	Autre Category = "autre"
)

// AllCategories returns the valid categories in canonical order. The keyword
// classifier scans them in this order and keeps the first match, so the order
// is part of the contract.
func AllCategories() []Category {
	return []Category{
		Actualite, Monde, Politique, Economie, Finance, Sport, Technologie,
		Science, Sante, Culture, Musique, Cinema, Environnement, Education,
		Justice, Societe, Meteo, Voyage, Cuisine, Mode, Automobile,
		Immobilier, Emploi, Jeux, Histoire, Autre,
	}
}

// categoryTerms widens the keyword match beyond the bare category label.
// Terms are stored accent-free; queries are folded before matching. Autre
// deliberately owns no terms. This table is independent of the topic synonym
// table used for article filtering, which has diverging entries; the two are
// kept separate pending a product decision.
var categoryTerms = map[Category][]string{
	Actualite:     {"actualites", "a la une", "dernieres nouvelles", "breaking"},
	Monde:         {"international", "etranger", "mondial", "europe", "afrique", "asie", "amerique"},
	Politique:     {"election", "gouvernement", "president", "ministre", "assemblee", "senat", "vote", "loi", "parlement"},
	Economie:      {"bourse", "inflation", "croissance", "pib", "entreprise", "marche", "startup", "business", "commerce"},
	Finance:       {"banque", "credit", "epargne", "impot", "taux", "crypto", "bitcoin"},
	Sport:         {"foot", "football", "tennis", "rugby", "basket", "handball", "cyclisme", "match", "championnat", "ligue", "olympique", "jo"},
	Technologie:   {"tech", "informatique", "intelligence artificielle", "ia", "numerique", "internet", "logiciel", "smartphone", "robot", "cybersecurite"},
	Science:       {"recherche", "espace", "nasa", "physique", "biologie", "decouverte", "astronomie"},
	Sante:         {"medecine", "hopital", "maladie", "vaccin", "epidemie", "virus", "medicament", "covid"},
	Culture:       {"art", "livre", "litterature", "theatre", "exposition", "festival", "patrimoine"},
	Musique:       {"concert", "album", "chanson", "rap", "jazz", "opera"},
	Cinema:        {"film", "serie", "acteur", "actrice", "realisateur", "oscars", "cannes", "netflix"},
	Environnement: {"climat", "ecologie", "rechauffement", "pollution", "biodiversite", "energie", "renouvelable"},
	Education:     {"ecole", "universite", "etudiant", "bac", "professeur", "formation"},
	Justice:       {"proces", "tribunal", "juge", "avocat", "condamnation", "enquete", "police"},
	Societe:       {"social", "greve", "manifestation", "immigration", "retraite"},
	Meteo:         {"temperature", "pluie", "neige", "canicule", "tempete", "orage", "previsions"},
	Voyage:        {"tourisme", "vacances", "destination", "avion", "hotel", "croisiere"},
	Cuisine:       {"recette", "gastronomie", "restaurant", "chef", "vin", "plat"},
	Mode:          {"fashion", "vetement", "defile", "luxe", "couture"},
	Automobile:    {"voiture", "auto", "moto", "formule 1", "permis"},
	Immobilier:    {"logement", "appartement", "maison", "loyer", "notaire"},
	Emploi:        {"travail", "chomage", "recrutement", "salaire", "carriere"},
	Jeux:          {"jeu video", "jeux video", "gaming", "console", "playstation", "xbox", "nintendo", "esport"},
	Histoire:      {"historique", "guerre mondiale", "archive", "commemoration"},
	Autre:         {},
}

type matcher struct {
	cat Category
	re  *regexp.Regexp
}

var (
	matchersOnce sync.Once
	matchers     []matcher
)

// wordPattern matches term as a whole word, tolerating a plural "s".
func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `s?\b`)
}

func buildMatchers() {
	for _, cat := range AllCategories() {
		if cat == Autre {
			continue
		}
		matchers = append(matchers, matcher{cat, wordPattern(string(cat))})
		for _, term := range categoryTerms[cat] {
			matchers = append(matchers, matcher{cat, wordPattern(textutil.NormalizeForMatch(term))})
		}
	}
}

// ByKeywords classifies a query by scanning category labels and their term
// lists in canonical order, returning the first whole-word match. It is the
// fallback of last resort, so it never fails: no match degrades to Autre.
func ByKeywords(query string) Category {
	matchersOnce.Do(buildMatchers)

	q := textutil.NormalizeForMatch(query)
	if q == "" {
		return Autre
	}
	for _, m := range matchers {
		if m.re.MatchString(q) {
			return m.cat
		}
	}
	return Autre
}
