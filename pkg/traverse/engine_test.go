package traverse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/fetch"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/models"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/selector"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/utils"
)

const testOrigin = "https://test.local"

// stubFetcher serves canned page bodies keyed by URL. Pages listed in
// failures error out that many times before succeeding.
type stubFetcher struct {
	pages    map[string]string
	failures map[string]int
	calls    []string
}

func (f *stubFetcher) Fetch(_ context.Context, pageURL string) (string, error) {
	f.calls = append(f.calls, pageURL)
	if f.failures[pageURL] > 0 {
		f.failures[pageURL]--
		return "", errors.New("dial tcp: connection refused")
	}
	body, ok := f.pages[pageURL]
	if !ok {
		return "", fmt.Errorf("%w: 404 Not Found", utils.ErrBadStatus)
	}
	return body, nil
}

// stubExtractor maps page bodies straight to candidate link lists
type stubExtractor struct {
	links map[string][]string
	errs  map[string]error
}

func (e *stubExtractor) Extract(markup string) ([]string, error) {
	if err, ok := e.errs[markup]; ok {
		return nil, err
	}
	return e.links[markup], nil
}

// newTestEngine wires an Engine from a page graph: url -> candidate links.
// Page bodies are the URLs themselves so the stub extractor can key on them.
func newTestEngine(graph map[string][]string, maxAttempts int, log *logrus.Logger) (*Engine, *stubFetcher) {
	pages := make(map[string]string, len(graph))
	links := make(map[string][]string, len(graph))
	for pageURL, candidates := range graph {
		pages[pageURL] = pageURL
		links[pageURL] = candidates
	}

	fetcher := &stubFetcher{pages: pages, failures: map[string]int{}}
	extractor := &stubExtractor{links: links}
	rng := rand.New(rand.NewSource(1))
	sel := selector.NewSelector("philosophy", rng, log)
	pacer := fetch.NewPacer(0, 0, rng, log)

	engine := NewEngine(fetcher, extractor, sel, pacer, Options{
		SiteOrigin:  testOrigin,
		TargetPath:  "/wiki/Philosophy",
		LinkPrefix:  "/wiki/",
		MaxAttempts: maxAttempts,
	}, log.WithField("run_id", "test"))

	return engine, fetcher
}

func nullLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRun_FindsTargetAfterFourHops(t *testing.T) {
	// A -> B -> C -> Philosophy_of_science, whose page lists the target
	graph := map[string][]string{
		testOrigin + "/wiki/A":                     {"/wiki/B"},
		testOrigin + "/wiki/B":                     {"/wiki/C"},
		testOrigin + "/wiki/C":                     {"/wiki/Philosophy_of_science"},
		testOrigin + "/wiki/Philosophy_of_science": {"/wiki/Philosophy"},
	}
	engine, fetcher := newTestEngine(graph, 1000, nullLogger())

	result := engine.Run(context.Background(), testOrigin+"/wiki/A")

	if result.Outcome != models.OutcomeFound {
		t.Fatalf("outcome = %s, want found", result.Outcome)
	}
	if result.Hops != 4 {
		t.Errorf("hops = %d, want 4", result.Hops)
	}
	wantCalls := []string{
		testOrigin + "/wiki/A",
		testOrigin + "/wiki/B",
		testOrigin + "/wiki/C",
		testOrigin + "/wiki/Philosophy_of_science",
	}
	if len(fetcher.calls) != len(wantCalls) {
		t.Fatalf("fetched %d pages, want %d: %v", len(fetcher.calls), len(wantCalls), fetcher.calls)
	}
	for i, want := range wantCalls {
		if fetcher.calls[i] != want {
			t.Errorf("fetch %d = %q, want %q", i, fetcher.calls[i], want)
		}
	}
}

func TestRun_TargetOnStartPage(t *testing.T) {
	graph := map[string][]string{
		testOrigin + "/wiki/A": {"/wiki/Philosophy"},
	}
	engine, _ := newTestEngine(graph, 1000, nullLogger())

	result := engine.Run(context.Background(), testOrigin+"/wiki/A")

	if result.Outcome != models.OutcomeFound {
		t.Fatalf("outcome = %s, want found", result.Outcome)
	}
	if result.Hops != 1 {
		t.Errorf("hops = %d, want 1 (start page counts as the first hop)", result.Hops)
	}
}

func TestRun_ExhaustsBudgetOnCycle(t *testing.T) {
	// Two pages linking only to each other, neither mentioning the target
	graph := map[string][]string{
		testOrigin + "/wiki/Apple":  {"/wiki/Banana"},
		testOrigin + "/wiki/Banana": {"/wiki/Apple"},
	}
	engine, fetcher := newTestEngine(graph, 1000, nullLogger())

	result := engine.Run(context.Background(), testOrigin+"/wiki/Apple")

	if result.Outcome != models.OutcomeExhausted {
		t.Fatalf("outcome = %s, want exhausted", result.Outcome)
	}
	if result.Hops != 0 {
		t.Errorf("hops = %d, want 0 for an unfound target", result.Hops)
	}
	if len(fetcher.calls) != 1000 {
		t.Errorf("fetched %d pages, want exactly 1000", len(fetcher.calls))
	}
}

func TestRun_EmptyCandidateListIsDeadEnd(t *testing.T) {
	log, hook := test.NewNullLogger()
	graph := map[string][]string{
		testOrigin + "/wiki/Orphan": {},
	}
	engine, fetcher := newTestEngine(graph, 1000, log)

	result := engine.Run(context.Background(), testOrigin+"/wiki/Orphan")

	if result.Outcome != models.OutcomeDeadEnd {
		t.Fatalf("outcome = %s, want dead_end", result.Outcome)
	}
	if len(fetcher.calls) != 1 {
		t.Errorf("fetched %d pages, want 1", len(fetcher.calls))
	}

	var errorEntries int
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			errorEntries++
		}
	}
	if errorEntries != 1 {
		t.Errorf("expected exactly one ERROR log entry, got %d", errorEntries)
	}
}

func TestRun_ExtractorFaultIsDeadEnd(t *testing.T) {
	engine, _ := newTestEngine(map[string][]string{
		testOrigin + "/wiki/Broken": nil,
	}, 1000, nullLogger())
	engine.extractor = &stubExtractor{
		errs: map[string]error{
			testOrigin + "/wiki/Broken": fmt.Errorf("%w: selector 'div.mw-body-content'", utils.ErrBodyContainer),
		},
	}

	result := engine.Run(context.Background(), testOrigin+"/wiki/Broken")

	if result.Outcome != models.OutcomeDeadEnd {
		t.Fatalf("outcome = %s, want dead_end", result.Outcome)
	}
}

func TestRun_FetchFailureDoesNotAdvance(t *testing.T) {
	// Start page fails twice, then succeeds with the target present.
	// The failed attempts consume budget but keep the URL and hop count.
	graph := map[string][]string{
		testOrigin + "/wiki/Flaky": {"/wiki/Philosophy"},
	}
	engine, fetcher := newTestEngine(graph, 1000, nullLogger())
	fetcher.failures[testOrigin+"/wiki/Flaky"] = 2

	result := engine.Run(context.Background(), testOrigin+"/wiki/Flaky")

	if result.Outcome != models.OutcomeFound {
		t.Fatalf("outcome = %s, want found", result.Outcome)
	}
	if result.Hops != 1 {
		t.Errorf("hops = %d, want 1 (failed fetches must not advance the hop count)", result.Hops)
	}
	if len(fetcher.calls) != 3 {
		t.Errorf("fetched %d times, want 3 (two failures plus one success)", len(fetcher.calls))
	}
	for i, u := range fetcher.calls {
		if u != testOrigin+"/wiki/Flaky" {
			t.Errorf("fetch %d went to %q, the URL must not change on failure", i, u)
		}
	}
}

func TestRun_PermanentFetchFailureExhaustsBudget(t *testing.T) {
	graph := map[string][]string{}
	engine, fetcher := newTestEngine(graph, 50, nullLogger())
	fetcher.failures[testOrigin+"/wiki/Gone"] = 50

	result := engine.Run(context.Background(), testOrigin+"/wiki/Gone")

	if result.Outcome != models.OutcomeExhausted {
		t.Fatalf("outcome = %s, want exhausted", result.Outcome)
	}
	if result.LastURL != testOrigin+"/wiki/Gone" {
		t.Errorf("last URL = %q, want the start URL", result.LastURL)
	}
	if len(fetcher.calls) != 50 {
		t.Errorf("fetched %d times, want 50", len(fetcher.calls))
	}
}

func TestRun_ContextCancellationAborts(t *testing.T) {
	graph := map[string][]string{
		testOrigin + "/wiki/A": {"/wiki/B"},
		testOrigin + "/wiki/B": {"/wiki/A"},
	}
	engine, fetcher := newTestEngine(graph, 1000, nullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	result := engine.Run(ctx, testOrigin+"/wiki/A")

	if result.Outcome != models.OutcomeAborted {
		t.Fatalf("outcome = %s, want aborted", result.Outcome)
	}
	if len(fetcher.calls) != 0 {
		t.Errorf("fetched %d pages after cancellation, want 0", len(fetcher.calls))
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Run took %v with a cancelled context", elapsed)
	}
}

func TestRun_ProgressLogStripsLinkPrefix(t *testing.T) {
	log, hook := test.NewNullLogger()
	graph := map[string][]string{
		testOrigin + "/wiki/A":              {"/wiki/Ancient_Greece"},
		testOrigin + "/wiki/Ancient_Greece": {"/wiki/Philosophy"},
	}
	engine, _ := newTestEngine(graph, 1000, log)

	result := engine.Run(context.Background(), testOrigin+"/wiki/A")

	if result.Outcome != models.OutcomeFound {
		t.Fatalf("outcome = %s, want found", result.Outcome)
	}

	var sawProgress bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.InfoLevel && entry.Message == "Ancient_Greece" {
			sawProgress = true
		}
	}
	if !sawProgress {
		t.Error("expected an INFO progress entry with the /wiki/ prefix stripped")
	}
}
