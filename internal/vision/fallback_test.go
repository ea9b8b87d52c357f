package vision_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cardintake/internal/domain"
	"cardintake/internal/port"
	"cardintake/internal/vision"
	"cardintake/mocks"
)

func fallbackOutput(model string) *port.DescribeOutput {
	return &port.DescribeOutput{
		Text:       "First Name: Ann\nLast Name: Lee",
		ModelUsed:  model,
		PromptUsed: "test prompt",
	}
}

func describeInput() port.DescribeInput {
	return port.DescribeInput{
		ImageBytes:  []byte("fake image"),
		ContentType: "image/jpeg",
		CardKind:    domain.CardKindInsurance,
	}
}

func TestFallbackDescriber_FirstSucceeds(t *testing.T) {
	d1 := new(mocks.MockCardDescriber)
	d2 := new(mocks.MockCardDescriber)
	d3 := new(mocks.MockCardDescriber)

	input := describeInput()
	d1.On("Describe", mock.Anything, input).Return(fallbackOutput("claude"), nil)

	fd := vision.NewFallbackDescriber(
		[]port.CardDescriber{d1, d2, d3},
		[]string{"claude", "gemini", "openai"},
	)

	result, err := fd.Describe(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "claude", result.ModelUsed)
	d2.AssertNotCalled(t, "Describe", mock.Anything, mock.Anything)
	d3.AssertNotCalled(t, "Describe", mock.Anything, mock.Anything)
}

func TestFallbackDescriber_FirstFails_SecondSucceeds(t *testing.T) {
	d1 := new(mocks.MockCardDescriber)
	d2 := new(mocks.MockCardDescriber)

	input := describeInput()
	d1.On("Describe", mock.Anything, input).Return(nil, errors.New("generic error"))
	d2.On("Describe", mock.Anything, input).Return(fallbackOutput("gemini"), nil)

	fd := vision.NewFallbackDescriber(
		[]port.CardDescriber{d1, d2},
		[]string{"claude", "gemini"},
	)

	result, err := fd.Describe(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "gemini", result.ModelUsed)
}

func TestFallbackDescriber_FirstRateLimited_SecondSucceeds(t *testing.T) {
	d1 := new(mocks.MockCardDescriber)
	d2 := new(mocks.MockCardDescriber)

	input := describeInput()
	rlErr := vision.NewRateLimitError("claude", errors.New("429"), 60)
	d1.On("Describe", mock.Anything, input).Return(nil, rlErr)
	d2.On("Describe", mock.Anything, input).Return(fallbackOutput("gemini"), nil)

	fd := vision.NewFallbackDescriber(
		[]port.CardDescriber{d1, d2},
		[]string{"claude", "gemini"},
	)

	result, err := fd.Describe(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "gemini", result.ModelUsed)
}

func TestFallbackDescriber_CircuitSkipsRateLimitedProvider(t *testing.T) {
	d1 := new(mocks.MockCardDescriber)
	d2 := new(mocks.MockCardDescriber)

	input := describeInput()
	d1.On("Describe", mock.Anything, input).Return(nil, vision.NewRateLimitError("claude", errors.New("429"), 60)).Once()
	d2.On("Describe", mock.Anything, input).Return(fallbackOutput("gemini"), nil).Twice()

	fd := vision.NewFallbackDescriber(
		[]port.CardDescriber{d1, d2},
		[]string{"claude", "gemini"},
	)

	// First call opens claude's circuit
	_, err := fd.Describe(context.Background(), input)
	assert.NoError(t, err)

	// Second call should skip claude entirely
	result, err := fd.Describe(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)
	d1.AssertNumberOfCalls(t, "Describe", 1)
}

func TestFallbackDescriber_AllRateLimited(t *testing.T) {
	d1 := new(mocks.MockCardDescriber)
	d2 := new(mocks.MockCardDescriber)

	input := describeInput()
	d1.On("Describe", mock.Anything, input).Return(nil, vision.NewRateLimitError("claude", errors.New("429"), 60))
	d2.On("Describe", mock.Anything, input).Return(nil, vision.NewRateLimitError("gemini", errors.New("429"), 30))

	fd := vision.NewFallbackDescriber(
		[]port.CardDescriber{d1, d2},
		[]string{"claude", "gemini"},
	)

	result, err := fd.Describe(context.Background(), input)

	assert.Error(t, err)
	assert.Nil(t, result)
	var rlErr *vision.RateLimitError
	assert.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallbackDescriber_AllFail_GenericError(t *testing.T) {
	d1 := new(mocks.MockCardDescriber)
	d2 := new(mocks.MockCardDescriber)

	input := describeInput()
	d1.On("Describe", mock.Anything, input).Return(nil, errors.New("boom"))
	d2.On("Describe", mock.Anything, input).Return(nil, errors.New("bang"))

	fd := vision.NewFallbackDescriber(
		[]port.CardDescriber{d1, d2},
		[]string{"claude", "gemini"},
	)

	result, err := fd.Describe(context.Background(), input)

	assert.Error(t, err)
	assert.Nil(t, result)
	var rlErr *vision.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}
