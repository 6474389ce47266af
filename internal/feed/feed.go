// Package feed aggregates articles from the configured RSS sources and
// filters them by topic.
package feed

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mmcdole/gofeed"

	"github.com/wiamouali-star/voice-acc-app/internal/config"
	"github.com/wiamouali-star/voice-acc-app/internal/textutil"
)

const (
	entriesPerSource = 5
	summaryMaxLen    = 200
)

// Article is one normalized feed entry as served to the voice assistant.
// Published keeps the source-native timestamp string; the front end renders
// it verbatim.
type Article struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Link      string   `json:"link"`
	Published string   `json:"published"`
	Source    string   `json:"source"`
	Tags      []string `json:"tags"`
}

// Aggregator pulls articles from a fixed source registry. Every call to
// FetchArticles is an independent best-effort snapshot; sources fail
// independently and never abort the whole run.
type Aggregator struct {
	parser  *gofeed.Parser
	sources []config.Source
}

func NewAggregator(sources []config.Source) *Aggregator {
	return &Aggregator{parser: gofeed.NewParser(), sources: sources}
}

// FetchArticles retrieves up to entriesPerSource articles from each source,
// sorted by source name. A source that fails to parse contributes a single
// placeholder article tagged "error" instead. It never returns an error; if
// the whole pipeline panics, the caller gets a single system article.
func (a *Aggregator) FetchArticles(ctx context.Context) (articles []Article) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("aggregation panicked", "panic", r)
			articles = []Article{systemArticle()}
		}
	}()

	for _, src := range a.sources {
		parsed, err := a.parser.ParseURLWithContext(src.URL, ctx)
		if err != nil {
			slog.Warn("source unavailable", "source", src.Name, "error", err)
			articles = append(articles, placeholderArticle(src.Name))
			continue
		}

		items := parsed.Items
		if len(items) > entriesPerSource {
			items = items[:entriesPerSource]
		}
		for _, item := range items {
			if item == nil {
				slog.Warn("skipping empty entry", "source", src.Name)
				continue
			}
			articles = append(articles, extractArticle(item, src.Name))
		}
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Source < articles[j].Source
	})
	return articles
}

func extractArticle(item *gofeed.Item, source string) Article {
	title := item.Title
	if title == "" {
		title = "sans titre"
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	published := item.Published
	if published == "" {
		published = item.Updated
	}

	tags := item.Categories
	if tags == nil {
		tags = []string{}
	}

	return Article{
		Title:     title,
		Summary:   textutil.CleanText(summary, summaryMaxLen),
		Link:      item.Link,
		Published: published,
		Source:    source,
		Tags:      tags,
	}
}

func placeholderArticle(source string) Article {
	return Article{
		Title:   source + " indisponible",
		Summary: "Cette source est temporairement indisponible. Réessayez dans quelques minutes.",
		Source:  source,
		Tags:    []string{"error"},
	}
}

func systemArticle() Article {
	return Article{
		Title:   "Actualités temporairement indisponibles",
		Summary: "Le service d'actualités rencontre un problème temporaire. Réessayez plus tard.",
		Source:  "Système",
		Tags:    []string{"error"},
	}
}
