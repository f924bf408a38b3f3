package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempAudio(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestTranscribe(t *testing.T) {
	var gotBody []byte
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var err error
		gotBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"accessible learning tools"}`))
	}))
	defer server.Close()

	tr := NewTranscriber(server.URL, "token-123")
	defer tr.Close()

	transcript, err := tr.Transcribe(context.Background(), writeTempAudio(t, "audio-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "accessible learning tools", transcript)
	assert.Equal(t, "audio-bytes", string(gotBody))
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestTranscribeEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":""}`))
	}))
	defer server.Close()

	tr := NewTranscriber(server.URL, "")
	defer tr.Close()

	transcript, err := tr.Transcribe(context.Background(), writeTempAudio(t, "silence"))
	require.NoError(t, err)
	assert.Empty(t, transcript)
}

func TestTranscribeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	tr := NewTranscriber(server.URL, "")
	defer tr.Close()

	_, err := tr.Transcribe(context.Background(), writeTempAudio(t, "audio"))
	assert.Error(t, err)
}

func TestTranscribeMissingFile(t *testing.T) {
	tr := NewTranscriber("http://unused.invalid", "")
	defer tr.Close()

	_, err := tr.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}
