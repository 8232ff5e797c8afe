// Package classifier defines the image classification collaborator
package classifier

//go:generate mockgen -destination=mock/mock_classifier.go -package=classifiermock github.com/KirkDiggler/ecosnap-api/internal/clients/classifier Classifier

import (
	"context"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
)

// Classifier labels a captured image. Labels are ordered best first.
type Classifier interface {
	Classify(ctx context.Context, image []byte) ([]entities.Label, error)
}

// Static returns the same labels for every image. The CLI uses it to feed
// labels typed by the user.
type Static struct {
	Labels []entities.Label
}

// NewStatic builds a Static classifier from plain descriptions, scoring them
// in descending order
func NewStatic(descriptions ...string) *Static {
	labels := make([]entities.Label, 0, len(descriptions))
	for i, d := range descriptions {
		labels = append(labels, entities.Label{
			Description: d,
			Score:       1 / float64(i+1),
		})
	}
	return &Static{Labels: labels}
}

// Classify implements Classifier
func (s *Static) Classify(ctx context.Context, _ []byte) ([]entities.Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]entities.Label(nil), s.Labels...), nil
}

var _ Classifier = (*Static)(nil)
