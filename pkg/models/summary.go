package models

import "fmt"

// MinDisclosedVotes is the vote count below which the average is withheld.
const MinDisclosedVotes = 2000

// VoteSummary is the vote information of one title. Average is only set when
// Disclosed is true.
type VoteSummary struct {
	Title     string
	VoteCount int64
	Average   float64
	Disclosed bool
}

func (v VoteSummary) Message() string {
	if !v.Disclosed {
		return fmt.Sprintf("La película '%s' tuvo menos de %d valoraciones.", v.Title, MinDisclosedVotes)
	}
	return fmt.Sprintf("La película '%s' tuvo %d votos y su puntaje promedio fue %.2f.", v.Title, v.VoteCount, v.Average)
}

// ScoreSummary is the release year and popularity of one title. Only its
// Message is sent to clients.
type ScoreSummary struct {
	Title       string
	ReleaseYear int64
	Popularity  float64
}

func (s ScoreSummary) Message() string {
	return fmt.Sprintf("La película '%s' fue estrenada en el año %d, con una popularidad de %.2f.", s.Title, s.ReleaseYear, s.Popularity)
}
