package movies

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"peliculas/internal/dataset"
	"peliculas/internal/locale"
	"peliculas/pkg/models"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	// ErrMalformedValue is returned when a stored numeric cell cannot be parsed.
	ErrMalformedValue = errors.New("malformed dataset value")
)

type MonthCount struct {
	Month string // English name as stored in the dataset
	Count int
}

type WeekdayCount struct {
	Day   string
	Count int
}

// Service answers every query from the injected store; it holds no other
// state and is safe for concurrent use.
type Service struct {
	Store *dataset.Store
}

func NewService(store *dataset.Store) *Service {
	return &Service{Store: store}
}

func (s *Service) CountByMonth(mes string) (MonthCount, error) {
	en, ok := locale.Month(mes)
	if !ok {
		return MonthCount{}, fmt.Errorf("month %q: %w", mes, ErrInvalidInput)
	}
	return MonthCount{
		Month: en,
		Count: s.Store.CountEqual(dataset.MonthlyReleases, dataset.ColMonth, en),
	}, nil
}

func (s *Service) CountByWeekday(dia string) (WeekdayCount, error) {
	en, ok := locale.Weekday(dia)
	if !ok {
		return WeekdayCount{}, fmt.Errorf("weekday %q: %w", dia, ErrInvalidInput)
	}
	return WeekdayCount{
		Day:   en,
		Count: s.Store.CountEqual(dataset.DailyReleases, dataset.ColDayOfWeek, en),
	}, nil
}

// GetVotes looks up the first row whose title matches case-insensitively.
// Titles with fewer than models.MinDisclosedVotes votes never carry an average.
func (s *Service) GetVotes(title string) (models.VoteSummary, error) {
	row, ok := s.findTitle(dataset.VoteStats, title)
	if !ok {
		return models.VoteSummary{}, fmt.Errorf("votes for %q: %w", title, ErrNotFound)
	}

	count, err := parseNumber(row, dataset.ColVoteCount)
	if err != nil {
		return models.VoteSummary{}, err
	}
	out := models.VoteSummary{Title: row[dataset.ColTitle]}
	if count < models.MinDisclosedVotes {
		return out, nil
	}

	avg, err := parseNumber(row, dataset.ColVoteAverage)
	if err != nil {
		return models.VoteSummary{}, err
	}
	out.VoteCount = int64(count)
	out.Average = avg
	out.Disclosed = true
	return out, nil
}

func (s *Service) GetScore(title string) (models.ScoreSummary, error) {
	row, ok := s.findTitle(dataset.ScoreStats, title)
	if !ok {
		return models.ScoreSummary{}, fmt.Errorf("score for %q: %w", title, ErrNotFound)
	}

	year, err := parseNumber(row, dataset.ColReleaseYear)
	if err != nil {
		return models.ScoreSummary{}, err
	}
	popularity, err := parseNumber(row, dataset.ColPopularity)
	if err != nil {
		return models.ScoreSummary{}, err
	}
	return models.ScoreSummary{
		Title:       row[dataset.ColTitle],
		ReleaseYear: int64(year),
		Popularity:  popularity,
	}, nil
}

// ListTitles returns every vote dataset title in row order, duplicates kept.
func (s *Service) ListTitles() []string {
	titles := s.Store.Column(dataset.VoteStats, dataset.ColTitle)
	if titles == nil {
		return []string{}
	}
	return titles
}

// findTitle treats blank stored titles as missing values, so an empty query
// never matches.
func (s *Service) findTitle(k dataset.Kind, title string) (dataset.Row, bool) {
	want := strings.ToLower(title)
	return s.Store.FirstMatch(k, dataset.ColTitle, func(v string) bool {
		return v != "" && strings.ToLower(v) == want
	})
}

// parseNumber accepts integer and float renderings ("1995", "1995.0").
func parseNumber(row dataset.Row, column string) (float64, error) {
	raw := strings.TrimSpace(row[column])
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%s %q for %q: %w", column, raw, row[dataset.ColTitle], ErrMalformedValue)
	}
	return n, nil
}
