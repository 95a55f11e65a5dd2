package view

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Belphemur/ShowShelf/internal/apperrors"
	"github.com/Belphemur/ShowShelf/internal/models"
)

// fakeCatalog implements Catalog for testing
type fakeCatalog struct {
	showsFunc    func(ctx context.Context) ([]models.Show, error)
	episodesFunc func(ctx context.Context, showID int) ([]models.Episode, error)
}

func (f *fakeCatalog) Shows(ctx context.Context) ([]models.Show, error) {
	if f.showsFunc != nil {
		return f.showsFunc(ctx)
	}
	return []models.Show{{ID: 1, Name: "Firefly"}}, nil
}

func (f *fakeCatalog) Episodes(ctx context.Context, showID int) ([]models.Episode, error) {
	if f.episodesFunc != nil {
		return f.episodesFunc(ctx, showID)
	}
	return []models.Episode{{ID: 10, Name: "Serenity", Season: 1, Number: 1, Summary: "pilot"}}, nil
}

func newLoadedController(t *testing.T, cat Catalog) *Controller {
	t.Helper()
	c := NewController(cat)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestController_InitialState(t *testing.T) {
	c := NewController(&fakeCatalog{})
	snap := c.Snapshot()

	if snap.View != ShowsView {
		t.Errorf("Expected initial view shows, got %s", snap.View)
	}
	if snap.ShowsLoaded {
		t.Error("Expected shows not loaded before Load")
	}
	if snap.ShowID != 0 || snap.SearchTerm != "" {
		t.Errorf("Expected empty selection, got %+v", snap.State)
	}
}

func TestController_SelectShow(t *testing.T) {
	c := newLoadedController(t, &fakeCatalog{})

	if err := c.SelectShow(context.Background(), 1); err != nil {
		t.Fatalf("SelectShow: %v", err)
	}
	snap := c.Snapshot()

	if snap.View != EpisodesView || snap.ShowID != 1 {
		t.Fatalf("Expected episodes view of show 1, got %+v", snap.State)
	}
	if snap.Show == nil || snap.Show.Name != "Firefly" {
		t.Errorf("Expected selected show Firefly, got %+v", snap.Show)
	}
	if len(snap.Episodes) != 1 || snap.Episodes[0].Name != "Serenity" {
		t.Errorf("Expected Serenity episode, got %+v", snap.Episodes)
	}
	if snap.SelectedEpisode != AllEpisodes {
		t.Errorf("Expected selector on %q, got %q", AllEpisodes, snap.SelectedEpisode)
	}
	if snap.CountVisible {
		t.Error("Expected count hidden without a typed search")
	}
}

func TestController_SelectShow_ResetsSearch(t *testing.T) {
	cat := &fakeCatalog{
		showsFunc: func(ctx context.Context) ([]models.Show, error) {
			return []models.Show{{ID: 1, Name: "Firefly"}, {ID: 2, Name: "Breaking Bad"}}, nil
		},
	}
	c := newLoadedController(t, cat)
	_ = c.SelectShow(context.Background(), 1)
	_ = c.Search("serenity")
	_ = c.SelectShow(context.Background(), 2)

	if st := c.State(); st.SearchTerm != "" || st.TermSource != TermNone || st.ShowID != 2 {
		t.Errorf("Expected search reset on show change, got %+v", st)
	}
}

func TestController_SelectShow_FailureKeepsState(t *testing.T) {
	cat := &fakeCatalog{
		episodesFunc: func(ctx context.Context, showID int) ([]models.Episode, error) {
			return nil, &apperrors.ErrNetwork{Err: errors.New("offline")}
		},
	}
	c := newLoadedController(t, cat)
	before := c.State()

	err := c.SelectShow(context.Background(), 1)
	if !errors.Is(err, &apperrors.ErrNetwork{}) {
		t.Fatalf("Expected ErrNetwork, got %v", err)
	}

	after := c.State()
	if after.View != before.View || after.ShowID != before.ShowID {
		t.Errorf("Expected view and show to stay unchanged, got %+v", after)
	}
	if after.Message != apperrors.EpisodesUnavailableMessage {
		t.Errorf("Expected episodes message, got %q", after.Message)
	}
}

func TestController_SelectShow_UnknownShow(t *testing.T) {
	episodeCalls := 0
	cat := &fakeCatalog{
		episodesFunc: func(ctx context.Context, showID int) ([]models.Episode, error) {
			episodeCalls++
			return nil, nil
		},
	}
	c := newLoadedController(t, cat)

	err := c.SelectShow(context.Background(), 42)
	if !errors.Is(err, &apperrors.ErrNotFound{}) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if episodeCalls != 0 {
		t.Error("Expected no episode fetch for a show that was never listed")
	}
	if c.State().View != ShowsView {
		t.Error("Expected to stay on the shows view")
	}
}

func TestController_Back(t *testing.T) {
	c := newLoadedController(t, &fakeCatalog{})
	c.SearchShows("fire")
	_ = c.SelectShow(context.Background(), 1)
	_ = c.Search("pilot")

	c.Back()
	snap := c.Snapshot()

	if snap.View != ShowsView || snap.ShowID != 0 || snap.SearchTerm != "" {
		t.Errorf("Expected cleared shows view, got %+v", snap.State)
	}
	if snap.ShowSearchTerm != "fire" {
		t.Errorf("Expected show search to survive Back, got %q", snap.ShowSearchTerm)
	}
	if snap.Episodes != nil || snap.AllEpisodes != nil {
		t.Error("Expected no episodes in the shows view")
	}
}

func TestController_Search_NoMatch(t *testing.T) {
	c := newLoadedController(t, &fakeCatalog{})
	_ = c.SelectShow(context.Background(), 1)

	if err := c.Search("xyz"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	snap := c.Snapshot()

	if len(snap.Episodes) != 0 {
		t.Errorf("Expected no episodes, got %d", len(snap.Episodes))
	}
	if snap.EpisodeCount != "Displaying 0 / 1 episodes." {
		t.Errorf("Unexpected count %q", snap.EpisodeCount)
	}
	if !snap.CountVisible {
		t.Error("Expected count visible for a typed search")
	}
	if snap.SearchInput != "xyz" {
		t.Errorf("Expected search input echoed, got %q", snap.SearchInput)
	}
}

func TestController_SelectEpisode_ThenShowAll(t *testing.T) {
	cat := &fakeCatalog{
		episodesFunc: func(ctx context.Context, showID int) ([]models.Episode, error) {
			return []models.Episode{
				{ID: 10, Name: "Serenity", Season: 1, Number: 1},
				{ID: 11, Name: "The Train Job", Season: 1, Number: 2},
			}, nil
		},
	}
	c := newLoadedController(t, cat)
	_ = c.SelectShow(context.Background(), 1)

	if err := c.SelectEpisode("11"); err != nil {
		t.Fatalf("SelectEpisode: %v", err)
	}
	snap := c.Snapshot()
	if len(snap.Episodes) != 1 || snap.Episodes[0].ID != 11 {
		t.Fatalf("Expected narrowing to episode 11, got %+v", snap.Episodes)
	}
	if snap.SelectedEpisode != "11" || snap.CountVisible {
		t.Errorf("Expected selector on 11 with hidden count, got %q %v", snap.SelectedEpisode, snap.CountVisible)
	}

	if err := c.SelectEpisode(AllEpisodes); err != nil {
		t.Fatalf("SelectEpisode(all): %v", err)
	}
	snap = c.Snapshot()
	if len(snap.Episodes) != 2 {
		t.Errorf("Expected full list restored, got %d", len(snap.Episodes))
	}
	if snap.CountVisible || snap.SearchTerm != "" {
		t.Errorf("Expected cleared count and term, got %+v", snap.State)
	}
}

func TestController_SelectEpisode_MissingIDIsEmpty(t *testing.T) {
	c := newLoadedController(t, &fakeCatalog{})
	_ = c.SelectShow(context.Background(), 1)

	if err := c.SelectEpisode("999"); err != nil {
		t.Fatalf("Expected missing id to be accepted, got %v", err)
	}
	if n := len(c.Snapshot().Episodes); n != 0 {
		t.Errorf("Expected empty result, got %d episodes", n)
	}
	if err := c.SelectEpisode("abc"); !errors.Is(err, &apperrors.ErrNotFound{}) {
		t.Errorf("Expected ErrNotFound for a non-numeric value, got %v", err)
	}
}

func TestController_LastWriterWins(t *testing.T) {
	cat := &fakeCatalog{
		episodesFunc: func(ctx context.Context, showID int) ([]models.Episode, error) {
			return []models.Episode{
				{ID: 10, Name: "Serenity"},
				{ID: 11, Name: "The Train Job"},
				{ID: 12, Name: "Bushwhacked"},
			}, nil
		},
	}
	c := newLoadedController(t, cat)
	_ = c.SelectShow(context.Background(), 1)

	_ = c.SelectEpisode("10")
	_ = c.Search("train")
	snap := c.Snapshot()
	if len(snap.Episodes) != 1 || snap.Episodes[0].ID != 11 {
		t.Fatalf("Expected typed search to override selection, got %+v", snap.Episodes)
	}
	if snap.SelectedEpisode != AllEpisodes {
		t.Errorf("Expected selector reset to all, got %q", snap.SelectedEpisode)
	}

	_ = c.SelectEpisode("12")
	snap = c.Snapshot()
	if len(snap.Episodes) != 1 || snap.Episodes[0].ID != 12 {
		t.Fatalf("Expected selection to override typed search, got %+v", snap.Episodes)
	}
	if snap.SearchInput != "" {
		t.Errorf("Expected search box cleared by selection, got %q", snap.SearchInput)
	}
}

func TestController_WrongView(t *testing.T) {
	c := newLoadedController(t, &fakeCatalog{})

	if err := c.Search("x"); !errors.Is(err, ErrWrongView) {
		t.Errorf("Expected ErrWrongView for Search in shows view, got %v", err)
	}
	if err := c.SelectEpisode("10"); !errors.Is(err, ErrWrongView) {
		t.Errorf("Expected ErrWrongView for SelectEpisode in shows view, got %v", err)
	}
}

func TestController_Load_FailureSingleMessage(t *testing.T) {
	cat := &fakeCatalog{
		showsFunc: func(ctx context.Context) ([]models.Show, error) {
			return nil, &apperrors.ErrNetwork{Err: errors.New("offline")}
		},
	}
	c := NewController(cat)

	for i := 0; i < 3; i++ {
		if err := c.Load(context.Background()); err == nil {
			t.Fatal("Expected Load to fail")
		}
	}
	snap := c.Snapshot()
	if snap.ShowsLoaded {
		t.Error("Expected shows to stay unloaded")
	}
	if snap.Message != apperrors.ShowsUnavailableMessage {
		t.Errorf("Expected exactly one message, got %q", snap.Message)
	}
}

func TestController_StaleSelectionDropped(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	cat := &fakeCatalog{
		showsFunc: func(ctx context.Context) ([]models.Show, error) {
			return []models.Show{{ID: 1, Name: "Slow"}, {ID: 2, Name: "Fast"}}, nil
		},
		episodesFunc: func(ctx context.Context, showID int) ([]models.Episode, error) {
			if showID == 1 {
				close(slowStarted)
				<-releaseSlow
			}
			return []models.Episode{{ID: showID * 100}}, nil
		},
	}
	c := newLoadedController(t, cat)

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowErr = c.SelectShow(context.Background(), 1)
	}()

	<-slowStarted
	if err := c.SelectShow(context.Background(), 2); err != nil {
		t.Fatalf("SelectShow(2): %v", err)
	}
	close(releaseSlow)
	wg.Wait()

	if !errors.Is(slowErr, ErrStale) {
		t.Errorf("Expected slow selection to be stale, got %v", slowErr)
	}
	snap := c.Snapshot()
	if snap.ShowID != 2 || len(snap.Episodes) != 1 || snap.Episodes[0].ID != 200 {
		t.Errorf("Expected show 2 to win, got show %d episodes %+v", snap.ShowID, snap.Episodes)
	}
}

func TestController_ShowSearch(t *testing.T) {
	cat := &fakeCatalog{
		showsFunc: func(ctx context.Context) ([]models.Show, error) {
			return []models.Show{
				{ID: 1, Name: "Firefly", Genres: []string{"Drama"}},
				{ID: 2, Name: "Breaking Bad", Genres: []string{"Crime"}},
			}, nil
		},
	}
	c := newLoadedController(t, cat)

	c.SearchShows("crime")
	snap := c.Snapshot()
	if len(snap.Shows) != 1 || snap.Shows[0].ID != 2 {
		t.Errorf("Expected genre match on Breaking Bad, got %+v", snap.Shows)
	}
	if snap.ShowCount != "Displaying 1 / 2 shows." {
		t.Errorf("Unexpected show count %q", snap.ShowCount)
	}
	if len(snap.AllShows) != 2 {
		t.Errorf("Expected selector to keep all shows, got %d", len(snap.AllShows))
	}
}
