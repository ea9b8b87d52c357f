package port

import (
	"context"

	"cardintake/internal/domain"
)

// DescribeInput carries the card image handed to a vision model.
type DescribeInput struct {
	ImageBytes  []byte
	ContentType string
	CardKind    domain.CardKind
}

// DescribeOutput contains the vision model's reply: a single free-form text
// blob describing the card. Turning that text into structured fields is the
// extraction pipeline's job, not the describer's.
type DescribeOutput struct {
	Text       string
	ModelUsed  string
	PromptUsed string
}

// CardDescriber abstracts the vision-model vendor call.
type CardDescriber interface {
	Describe(ctx context.Context, input DescribeInput) (*DescribeOutput, error)
}
