package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierPredict(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[{"label":{"category":"Education","sub_category":"Accessibility"},"score":0.91}]]`))
	}))
	defer server.Close()

	c := NewClassifier(server.URL, "test-token")
	defer c.Close()

	predictions, err := c.Predict(context.Background(), "some title some content")
	require.NoError(t, err)
	require.Len(t, predictions, 1)

	assert.Equal(t, "Education", predictions[0].Label.Category)
	assert.Equal(t, "Accessibility", predictions[0].Label.SubCategory)
	assert.InDelta(t, 0.91, predictions[0].Score, 0.001)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "some title some content", gotBody["inputs"])
}

func TestClassifierPredictEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewClassifier(server.URL, "")
	defer c.Close()

	predictions, err := c.Predict(context.Background(), "text")
	require.NoError(t, err)
	assert.Empty(t, predictions)
}

func TestClassifierPredictServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClassifier(server.URL, "")
	defer c.Close()

	_, err := c.Predict(context.Background(), "text")
	assert.Error(t, err)
}
