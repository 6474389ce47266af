package feed

import "strings"

// topicSynonyms expands a coarse filter topic into the terms searched for in
// article text. Maintained separately from the classifier's category terms:
// the two tables have diverged on purpose-unclear entries and merging them is
// a pending product decision. A topic with no entry is searched for as-is.
var topicSynonyms = map[string][]string{
	"sport":         {"sport", "football", "tennis", "rugby", "basket", "match", "championnat"},
	"politique":     {"politique", "élection", "gouvernement", "ministre", "président", "assemblée"},
	"economie":      {"économie", "economie", "bourse", "inflation", "entreprise", "croissance"},
	"technologie":   {"technologie", "tech", "intelligence artificielle", "numérique", "internet"},
	"sante":         {"santé", "sante", "médecine", "hôpital", "vaccin", "maladie"},
	"culture":       {"culture", "cinéma", "musique", "festival", "livre", "exposition"},
	"international": {"international", "monde", "étranger", "europe", "ukraine", "états-unis"},
	"environnement": {"environnement", "climat", "écologie", "pollution", "énergie"},
}

// FilterByTopic keeps the articles whose combined text contains any of the
// topic's search terms. The result is a subsequence of the input; an empty
// topic returns the input unchanged.
func FilterByTopic(articles []Article, topic string) []Article {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return articles
	}

	terms, ok := topicSynonyms[strings.ToLower(topic)]
	if !ok {
		terms = []string{strings.ToLower(topic)}
	}

	filtered := make([]Article, 0, len(articles))
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Summary + " " + a.Source + " " + strings.Join(a.Tags, " "))
		for _, term := range terms {
			if strings.Contains(text, term) {
				filtered = append(filtered, a)
				break
			}
		}
	}
	return filtered
}
