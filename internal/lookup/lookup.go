// Package lookup implements the single-domain rating lookup: it normalizes the
// requested domain, asks a ratings provider once, checks that the answer is
// usable and renders it as plain text.
package lookup

import (
	"context"
	"fmt"
	"io"
	"scorecard/pkg/domain"
	"scorecard/pkg/logger"
	"scorecard/pkg/ratings"
	"scorecard/pkg/serrors"

	"go.uber.org/zap"
)

// Service performs rating lookups against a ratings.Client.
type Service struct {
	client ratings.Client
}

// New constructs a Service backed by client.
func New(client ratings.Client) *Service {
	return &Service{client: client}
}

// Lookup normalizes raw and fetches its rating with exactly one provider call.
// There is no retry. When the provider answers without a score or a grade the
// partial rating is returned together with a serrors.ErrIncomplete error so the
// caller can still show what was received.
func (s *Service) Lookup(ctx context.Context, raw string) (*domain.Rating, error) {
	name := NormalizeDomain(raw)
	if name == "" {
		return nil, serrors.With(serrors.ErrUsage, "domain must not be empty")
	}
	ctx = logger.WithFields(ctx, zap.String("domain", name))

	rating, err := s.client.CompanyRating(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not fetch rating: %w", err)
	}
	rating.Domain = name

	if !rating.Complete() {
		logger.Debug(ctx, "provider returned an incomplete rating",
			zap.String("score", rating.ScoreText()),
			zap.String("grade", rating.GradeText()))

		return rating, serrors.With(serrors.ErrIncomplete,
			"incomplete rating for '%s' (Security Score: %s, Grade: %s)",
			name, rating.ScoreText(), rating.GradeText())
	}

	logger.Debug(ctx, "rating fetched")

	return rating, nil
}

// Render writes the three-line plain text form of r.
func Render(w io.Writer, r *domain.Rating) error {
	_, err := fmt.Fprintf(w, "Domain: %s\nSecurity Score: %s\nGrade: %s\n", r.Domain, r.ScoreText(), r.GradeText())
	if err != nil {
		return fmt.Errorf("could not write rating: %w", err)
	}

	return nil
}
