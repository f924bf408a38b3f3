package search

import (
	"context"
	"fmt"
	"os"
	"time"

	"resty.dev/v3"
)

// Transcriber sends a recorded audio file to the speech-to-text service and
// returns the transcript. An empty transcript means the service recognized
// nothing; callers treat that as a failure.
type Transcriber struct {
	client *resty.Client
	url    string
	token  string
}

func NewTranscriber(url, token string) *Transcriber {
	client := resty.NewWithTransportSettings(&resty.TransportSettings{
		DialerTimeout:         5 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
	})

	return &Transcriber{
		client: client,
		url:    url,
		token:  token,
	}
}

func (t *Transcriber) Close() error {
	return t.client.Close()
}

type transcriptResponse struct {
	Text string `json:"text"`
}

func (t *Transcriber) Transcribe(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	res, err := t.client.R().
		WithContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetAuthToken(t.token).
		SetBody(data).
		SetResult(&transcriptResponse{}).
		Post(t.url)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("transcription service responded with status %s", res.Status())
	}

	return res.Result().(*transcriptResponse).Text, nil
}
