package domain

import "strconv"

// NotAvailable is rendered in place of a score or grade the provider did not return.
const NotAvailable = "N/A"

// Rating is the security rating a provider reports for one domain.
type Rating struct {
	// Domain is the normalized domain the rating was requested for.
	Domain string
	// Score is the numeric rating; nil when the provider omitted it or sent null.
	Score *float64
	// Grade is the letter grade; nil when the provider omitted it or sent null.
	Grade *string
}

// ScoreText renders the score without trailing zeros, or NotAvailable.
func (r Rating) ScoreText() string {
	if r.Score == nil {
		return NotAvailable
	}

	return strconv.FormatFloat(*r.Score, 'f', -1, 64)
}

// GradeText renders the grade, or NotAvailable when missing or empty.
func (r Rating) GradeText() string {
	if r.Grade == nil || *r.Grade == "" {
		return NotAvailable
	}

	return *r.Grade
}

// Complete reports whether both a score and a non-empty grade are present.
// A zero score counts as present.
func (r Rating) Complete() bool {
	return r.Score != nil && r.Grade != nil && *r.Grade != ""
}
