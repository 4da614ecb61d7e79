package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gridironhq/gridiron/internal/domain/week"
)

type stubWeekRepo struct {
	byID     map[string]week.Week
	season   *week.Season
	byNumber map[int]week.Week
	latest   *week.Week
	err      error
}

var _ week.Repository = (*stubWeekRepo)(nil)

func (s *stubWeekRepo) GetByID(_ context.Context, weekID string) (week.Week, bool, error) {
	if s.err != nil {
		return week.Week{}, false, s.err
	}
	item, ok := s.byID[weekID]
	return item, ok, nil
}

func (s *stubWeekRepo) GetSeasonByYear(_ context.Context, _ string, year int) (week.Season, bool, error) {
	if s.err != nil {
		return week.Season{}, false, s.err
	}
	if s.season == nil || s.season.Year != year {
		return week.Season{}, false, nil
	}
	return *s.season, true, nil
}

func (s *stubWeekRepo) GetBySeasonAndNumber(_ context.Context, seasonID string, number int) (week.Week, bool, error) {
	if s.err != nil {
		return week.Week{}, false, s.err
	}
	if s.season == nil || s.season.ID != seasonID {
		return week.Week{}, false, nil
	}
	item, ok := s.byNumber[number]
	return item, ok, nil
}

func (s *stubWeekRepo) GetLatestCompleted(_ context.Context) (week.Week, bool, error) {
	if s.err != nil {
		return week.Week{}, false, s.err
	}
	if s.latest == nil {
		return week.Week{}, false, nil
	}
	return *s.latest, true, nil
}

func intPtr(v int) *int { return &v }

func TestResolveByID(t *testing.T) {
	repo := &stubWeekRepo{byID: map[string]week.Week{
		"w7": {ID: "w7", Number: 7, Status: week.StatusCompleted},
	}}
	r := NewWeekResolver(repo)

	got, err := r.Resolve(context.Background(), WeekSelector{WeekID: "w7"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "w7" {
		t.Fatalf("resolved week %s, want w7", got.ID)
	}

	_, err = r.Resolve(context.Background(), WeekSelector{WeekID: "missing"})
	if !errors.Is(err, ErrWeekNotFound) {
		t.Fatalf("expected ErrWeekNotFound, got %v", err)
	}
}

func TestResolveByNumberUsesSeasonYear(t *testing.T) {
	repo := &stubWeekRepo{
		season:   &week.Season{ID: "s2025", League: week.LeagueNFL, Year: 2025},
		byNumber: map[int]week.Week{3: {ID: "w3", SeasonID: "s2025", Number: 3}},
	}
	r := NewWeekResolver(repo)
	// February 2026 still belongs to the 2025 season.
	r.now = func() time.Time { return time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC) }

	got, err := r.Resolve(context.Background(), WeekSelector{WeekNumber: intPtr(3)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "w3" {
		t.Fatalf("resolved week %s, want w3", got.ID)
	}
}

func TestResolveByNumberRejectsNonPositive(t *testing.T) {
	r := NewWeekResolver(&stubWeekRepo{})

	_, err := r.Resolve(context.Background(), WeekSelector{WeekNumber: intPtr(0)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestResolveDefaultsToLatestCompleted(t *testing.T) {
	repo := &stubWeekRepo{latest: &week.Week{ID: "w9", Number: 9, Status: week.StatusCompleted}}
	r := NewWeekResolver(repo)

	got, err := r.Resolve(context.Background(), WeekSelector{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "w9" {
		t.Fatalf("resolved week %s, want w9", got.ID)
	}

	empty := NewWeekResolver(&stubWeekRepo{})
	if _, err := empty.Resolve(context.Background(), WeekSelector{}); !errors.Is(err, ErrWeekNotFound) {
		t.Fatalf("expected ErrWeekNotFound with no completed weeks, got %v", err)
	}
}

func TestResolveWrapsRepositoryFailure(t *testing.T) {
	r := NewWeekResolver(&stubWeekRepo{err: errors.New("connection refused")})

	_, err := r.Resolve(context.Background(), WeekSelector{WeekID: "w1"})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestSeasonYear(t *testing.T) {
	cases := []struct {
		at   time.Time
		want int
	}{
		{time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), 2026},
		{time.Date(2026, time.July, 31, 23, 0, 0, 0, time.UTC), 2025},
		{time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), 2025},
		{time.Date(2025, time.December, 28, 0, 0, 0, 0, time.UTC), 2025},
	}
	for _, tc := range cases {
		if got := SeasonYear(tc.at); got != tc.want {
			t.Errorf("SeasonYear(%s) = %d, want %d", tc.at.Format(time.RFC3339), got, tc.want)
		}
	}
}
