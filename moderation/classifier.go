package moderation

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// PredictionLabel names a category and subcategory by display name, the way
// the inference model labels its outputs.
type PredictionLabel struct {
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
}

type Prediction struct {
	Label PredictionLabel `json:"label"`
	Score float64         `json:"score"`
}

// Classifier calls the remote topic-classification endpoint. The response
// is a 2D array of ranked predictions; Predict returns the first row.
type Classifier struct {
	client *resty.Client
	url    string
	token  string
}

func NewClassifier(url, token string) *Classifier {
	client := resty.NewWithTransportSettings(&resty.TransportSettings{
		DialerTimeout:         5 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	})

	return &Classifier{
		client: client,
		url:    url,
		token:  token,
	}
}

func (c *Classifier) Close() error {
	return c.client.Close()
}

func (c *Classifier) Predict(ctx context.Context, text string) ([]Prediction, error) {
	res, err := c.client.R().
		WithContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.token).
		SetBody(map[string]string{"inputs": text}).
		SetResult(&[][]Prediction{}).
		Post(c.url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("classifier responded with status %s", res.Status())
	}

	rows := *res.Result().(*[][]Prediction)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
