package cache

import (
	"testing"
	"time"

	"github.com/wiamouali-star/voice-acc-app/internal/feed"
)

func TestGetEmptyMisses(t *testing.T) {
	c := New(time.Minute)
	if _, ok := c.Get(); ok {
		t.Error("empty cache must miss")
	}
}

func TestPutThenGet(t *testing.T) {
	c := New(time.Minute)
	articles := []feed.Article{{Title: "un"}, {Title: "deux"}}
	c.Put(articles)

	got, ok := c.Get()
	if !ok {
		t.Fatal("expected a hit within the TTL")
	}
	if len(got) != 2 || got[0].Title != "un" || got[1].Title != "deux" {
		t.Errorf("cached data changed: %+v", got)
	}
}

func TestGetAfterExpiry(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Put([]feed.Article{{Title: "périmé"}})

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get(); ok {
		t.Error("expired entry must miss")
	}
}

func TestPutReplacesWholesale(t *testing.T) {
	c := New(time.Minute)
	c.Put([]feed.Article{{Title: "ancien"}})
	c.Put([]feed.Article{{Title: "nouveau"}})

	got, ok := c.Get()
	if !ok || len(got) != 1 || got[0].Title != "nouveau" {
		t.Errorf("expected the replacement snapshot, got %+v", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			c.Put([]feed.Article{{Title: "x"}})
		}
		close(done)
	}()
	for i := 0; i < 100; i++ {
		c.Get()
	}
	<-done
}
