package feed

import (
	"reflect"
	"testing"
)

func sampleArticles() []Article {
	return []Article{
		{Title: "Match de football ce soir", Summary: "Le championnat reprend", Source: "Le Monde", Tags: []string{}},
		{Title: "Résultats électoraux", Summary: "Le gouvernement réagit", Source: "France 24", Tags: []string{}},
		{Title: "Une découverte", Summary: "", Source: "BBC News", Tags: []string{"science"}},
	}
}

func TestFilterByTopicEmptyIsIdentity(t *testing.T) {
	articles := sampleArticles()
	got := FilterByTopic(articles, "")
	if !reflect.DeepEqual(got, articles) {
		t.Error("empty topic must return the input unchanged")
	}
}

func TestFilterByTopicSynonyms(t *testing.T) {
	got := FilterByTopic(sampleArticles(), "sport")
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Title != "Match de football ce soir" {
		t.Errorf("matched %q", got[0].Title)
	}
}

func TestFilterByTopicUnknownTopicUsesRawTerm(t *testing.T) {
	got := FilterByTopic(sampleArticles(), "découverte")
	if len(got) != 1 || got[0].Source != "BBC News" {
		t.Errorf("expected the BBC article, got %+v", got)
	}
}

func TestFilterByTopicMatchesTags(t *testing.T) {
	got := FilterByTopic(sampleArticles(), "science")
	if len(got) != 1 || got[0].Source != "BBC News" {
		t.Errorf("tag match failed, got %+v", got)
	}
}

func TestFilterByTopicMatchesSource(t *testing.T) {
	got := FilterByTopic(sampleArticles(), "le monde")
	if len(got) != 1 || got[0].Source != "Le Monde" {
		t.Errorf("source match failed, got %+v", got)
	}
}

func TestFilterByTopicPreservesOrder(t *testing.T) {
	articles := []Article{
		{Title: "football un"},
		{Title: "autre chose"},
		{Title: "football deux"},
		{Title: "football trois"},
	}
	got := FilterByTopic(articles, "football")
	want := []string{"football un", "football deux", "football trois"}
	if len(got) != len(want) {
		t.Fatalf("expected %d articles, got %d", len(want), len(got))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestFilterByTopicNoMatch(t *testing.T) {
	got := FilterByTopic(sampleArticles(), "cuisine moléculaire")
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}
