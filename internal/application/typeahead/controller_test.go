package typeahead

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const testDelay = 10 * time.Millisecond

// settle waits long enough for a debounced search to fire and complete.
func settle() { time.Sleep(8 * testDelay) }

// TestShortQuerySkipsSearch verifies text under two characters never hits
// the backend and clears existing suggestions.
func TestShortQuerySkipsSearch(t *testing.T) {
	var calls int32
	ctrl := NewController(func(ctx context.Context, text string) ([]Option, error) {
		atomic.AddInt32(&calls, 1)
		return []Option{{ID: 1, Label: "Juan Perez"}}, nil
	}, testDelay)

	ctrl.Input(context.Background(), "ju")
	settle()
	if len(ctrl.Options()) != 1 {
		t.Fatalf("options = %v, want one", ctrl.Options())
	}

	ctrl.Input(context.Background(), "j")
	settle()
	if got := ctrl.Options(); len(got) != 0 {
		t.Errorf("options after short query = %v, want empty", got)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("search calls = %d, want 1", n)
	}
}

// TestUnchangedTextIsNoop verifies repeating the same text does not re-search.
func TestUnchangedTextIsNoop(t *testing.T) {
	var calls int32
	ctrl := NewController(func(ctx context.Context, text string) ([]Option, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}, testDelay)

	ctrl.Input(context.Background(), "ana")
	settle()
	ctrl.Input(context.Background(), "ana")
	settle()
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("search calls = %d, want 1", n)
	}
}

// TestDebounceCollapsesBurst verifies a typing burst produces one search
// for the final text.
func TestDebounceCollapsesBurst(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	ctrl := NewController(func(ctx context.Context, text string) ([]Option, error) {
		mu.Lock()
		queries = append(queries, text)
		mu.Unlock()
		return nil, nil
	}, testDelay)

	ctx := context.Background()
	for _, text := range []string{"j", "ju", "jua", "juan"} {
		ctrl.Input(ctx, text)
		time.Sleep(testDelay / 4)
	}
	settle()

	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 1 || queries[0] != "juan" {
		t.Errorf("queries = %v, want [juan]", queries)
	}
}

// TestLatestWins verifies a stale response arriving after a newer one is
// discarded.
func TestLatestWins(t *testing.T) {
	slow := make(chan struct{})
	ctrl := NewController(func(ctx context.Context, text string) ([]Option, error) {
		if text == "slow query" {
			<-slow
			return []Option{{ID: 1, Label: "STALE"}}, nil
		}
		return []Option{{ID: 2, Label: "FRESH"}}, nil
	}, testDelay)

	ctx := context.Background()
	ctrl.Input(ctx, "slow query")
	time.Sleep(3 * testDelay) // let the slow search start and block

	ctrl.Input(ctx, "fresh")
	settle()
	close(slow) // stale response arrives last
	settle()

	got := ctrl.Options()
	if len(got) != 1 || got[0].Label != "FRESH" {
		t.Errorf("options = %v, want [FRESH]", got)
	}
}

// TestSelectCommitsLabel verifies Select stores the canonical label and
// closes the suggestion list.
func TestSelectCommitsLabel(t *testing.T) {
	ctrl := NewController(func(ctx context.Context, text string) ([]Option, error) {
		return []Option{{ID: 7, Label: "XB-PIL - Cessna 172"}}, nil
	}, testDelay)

	ctrl.Input(context.Background(), "xb")
	settle()
	ctrl.Select(Option{ID: 7, Label: "XB-PIL - Cessna 172"})

	sel, ok := ctrl.Selected()
	if !ok || sel.ID != 7 || sel.Label != "XB-PIL - Cessna 172" {
		t.Errorf("Selected = %+v ok=%v", sel, ok)
	}
	if len(ctrl.Options()) != 0 {
		t.Error("suggestions still open after Select")
	}
}

// TestClearResetsEverything verifies Clear drops text, options and selection.
func TestClearResetsEverything(t *testing.T) {
	ctrl := NewController(func(ctx context.Context, text string) ([]Option, error) {
		return []Option{{ID: 1, Label: "A"}}, nil
	}, testDelay)

	ctrl.Input(context.Background(), "an")
	settle()
	ctrl.Select(Option{ID: 1, Label: "A"})
	ctrl.Clear()

	if _, ok := ctrl.Selected(); ok {
		t.Error("selection survived Clear")
	}
	if len(ctrl.Options()) != 0 {
		t.Error("options survived Clear")
	}
}

// TestSearchErrorClearsOptions verifies a failed search empties suggestions
// instead of keeping stale ones.
func TestSearchErrorClearsOptions(t *testing.T) {
	fail := false
	ctrl := NewController(func(ctx context.Context, text string) ([]Option, error) {
		if fail {
			return nil, errors.New("backend down")
		}
		return []Option{{ID: 1, Label: "A"}}, nil
	}, testDelay)

	ctx := context.Background()
	ctrl.Input(ctx, "an")
	settle()
	if len(ctrl.Options()) != 1 {
		t.Fatal("expected one option before failure")
	}

	fail = true
	ctrl.Input(ctx, "ana")
	settle()
	if got := ctrl.Options(); len(got) != 0 {
		t.Errorf("options after failed search = %v, want empty", got)
	}
}
