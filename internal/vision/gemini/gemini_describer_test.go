package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cardintake/internal/config"
	"cardintake/internal/domain"
	"cardintake/internal/port"
	gemini "cardintake/internal/vision/gemini"
)

func newTestDescriber(serverURL string) *gemini.Describer {
	cfg := &config.VisionProviderConfig{
		Provider:     "gemini",
		APIKey:       "test-api-key",
		DefaultModel: "gemini-2.0-flash",
		TimeoutSecs:  30,
	}
	return gemini.NewDescriberWithEndpoint(cfg, serverURL)
}

func TestGeminiDescriber_Describe_Success(t *testing.T) {
	responseBody := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"text": "Member ID: XYZ123456\nInsurance: Blue Cross"},
					},
				},
				"finishReason": "STOP",
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-goog-api-key"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)

		contents := reqBody["contents"].([]interface{})
		assert.Len(t, contents, 1)
		parts := contents[0].(map[string]interface{})["parts"].([]interface{})
		assert.Len(t, parts, 2)

		inline := parts[0].(map[string]interface{})["inline_data"].(map[string]interface{})
		assert.Equal(t, "image/jpeg", inline["mime_type"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	d := newTestDescriber(server.URL)

	result, err := d.Describe(context.Background(), port.DescribeInput{
		ImageBytes:  []byte("fake jpeg"),
		ContentType: "image/jpeg",
		CardKind:    domain.CardKindInsurance,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "gemini-2.0-flash", result.ModelUsed)
	assert.Contains(t, result.Text, "XYZ123456")
}

func TestGeminiDescriber_Describe_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	d := newTestDescriber(server.URL)

	result, err := d.Describe(context.Background(), port.DescribeInput{
		ImageBytes:  []byte("fake"),
		ContentType: "image/png",
		CardKind:    domain.CardKindID,
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGeminiDescriber_Describe_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal"}`))
	}))
	defer server.Close()

	d := newTestDescriber(server.URL)

	result, err := d.Describe(context.Background(), port.DescribeInput{
		ImageBytes:  []byte("fake"),
		ContentType: "image/jpeg",
		CardKind:    domain.CardKindID,
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "status 500")
}
