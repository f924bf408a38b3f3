package moderation

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"knowshare/apperr"
	"knowshare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// predictionStub is a stub for PredictionSource.
type predictionStub struct {
	predictFn func(ctx context.Context, text string) ([]Prediction, error)
}

func (s *predictionStub) Predict(ctx context.Context, text string) ([]Prediction, error) {
	return s.predictFn(ctx, text)
}

// taxonomyStub is a stub for Taxonomy.
type taxonomyStub struct {
	findCategoryFn    func(ctx context.Context, name string) (*models.Category, error)
	findSubcategoryFn func(ctx context.Context, name string, categoryID primitive.ObjectID) (*models.Subcategory, error)
}

func (s *taxonomyStub) FindCategory(ctx context.Context, name string) (*models.Category, error) {
	return s.findCategoryFn(ctx, name)
}

func (s *taxonomyStub) FindSubcategory(ctx context.Context, name string, categoryID primitive.ObjectID) (*models.Subcategory, error) {
	return s.findSubcategoryFn(ctx, name, categoryID)
}

func resolvedTaxonomy(category *models.Category, subcategory *models.Subcategory) *taxonomyStub {
	return &taxonomyStub{
		findCategoryFn: func(_ context.Context, _ string) (*models.Category, error) {
			return category, nil
		},
		findSubcategoryFn: func(_ context.Context, _ string, _ primitive.ObjectID) (*models.Subcategory, error) {
			return subcategory, nil
		},
	}
}

func rankedPredictions(category, subcategory string) *predictionStub {
	return &predictionStub{
		predictFn: func(_ context.Context, _ string) ([]Prediction, error) {
			return []Prediction{
				{Label: PredictionLabel{Category: category, SubCategory: subcategory}, Score: 0.92},
				{Label: PredictionLabel{Category: "Other", SubCategory: "Misc"}, Score: 0.05},
			}, nil
		},
	}
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %T: %v", err, err)
	assert.Equal(t, status, appErr.Status)
}

func TestClassifyAndScreenResolvesTaxonomy(t *testing.T) {
	category := &models.Category{ID: primitive.NewObjectID(), Name: "Education"}
	subcategory := &models.Subcategory{ID: primitive.NewObjectID(), Name: "Accessibility", CategoryID: category.ID}

	p := NewPipeline(rankedPredictions("education", "accessibility"), resolvedTaxonomy(category, subcategory))

	result, err := p.ClassifyAndScreen(context.Background(), "Learning aids", "tools that help in class")
	require.NoError(t, err)

	assert.Equal(t, category.ID, result.CategoryID)
	assert.Equal(t, "Education", result.CategoryName)
	assert.Equal(t, subcategory.ID, result.SubcategoryID)
	assert.Equal(t, "Accessibility", result.SubcategoryName)
	assert.False(t, result.Flagged)
	assert.Empty(t, result.FlagReason)
}

func TestClassifyAndScreenFlagsProfanityWithoutBlocking(t *testing.T) {
	category := &models.Category{ID: primitive.NewObjectID(), Name: "Education"}
	subcategory := &models.Subcategory{ID: primitive.NewObjectID(), Name: "Accessibility", CategoryID: category.ID}

	p := NewPipeline(rankedPredictions("Education", "Accessibility"), resolvedTaxonomy(category, subcategory))

	result, err := p.ClassifyAndScreen(context.Background(), "this is bullshit", "but still a valid post")
	require.NoError(t, err)

	assert.True(t, result.Flagged)
	assert.Equal(t, FlagReason, result.FlagReason)
	assert.Equal(t, "Education", result.CategoryName)
}

func TestClassifyAndScreenClassifierTransportError(t *testing.T) {
	stub := &predictionStub{
		predictFn: func(_ context.Context, _ string) ([]Prediction, error) {
			return nil, errors.New("connection refused")
		},
	}
	p := NewPipeline(stub, resolvedTaxonomy(nil, nil))

	_, err := p.ClassifyAndScreen(context.Background(), "title", "content")
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestClassifyAndScreenEmptyPredictions(t *testing.T) {
	stub := &predictionStub{
		predictFn: func(_ context.Context, _ string) ([]Prediction, error) {
			return nil, nil
		},
	}
	p := NewPipeline(stub, resolvedTaxonomy(nil, nil))

	_, err := p.ClassifyAndScreen(context.Background(), "title", "content")
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestClassifyAndScreenMalformedPrediction(t *testing.T) {
	stub := &predictionStub{
		predictFn: func(_ context.Context, _ string) ([]Prediction, error) {
			return []Prediction{{Label: PredictionLabel{Category: "", SubCategory: ""}}}, nil
		},
	}
	p := NewPipeline(stub, resolvedTaxonomy(nil, nil))

	_, err := p.ClassifyAndScreen(context.Background(), "title", "content")
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestClassifyAndScreenUnknownCategory(t *testing.T) {
	p := NewPipeline(rankedPredictions("Nonexistent", "Whatever"), resolvedTaxonomy(nil, nil))

	_, err := p.ClassifyAndScreen(context.Background(), "title", "content")
	assertStatus(t, err, http.StatusBadRequest)
}

func TestClassifyAndScreenErrorsCarryModerationOp(t *testing.T) {
	p := NewPipeline(rankedPredictions("Nonexistent", "Whatever"), resolvedTaxonomy(nil, nil))

	_, err := p.ClassifyAndScreen(context.Background(), "title", "content")
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "moderation", appErr.Op)
}

func TestClassifyAndScreenUnknownSubcategory(t *testing.T) {
	category := &models.Category{ID: primitive.NewObjectID(), Name: "Education"}
	p := NewPipeline(rankedPredictions("Education", "Nonexistent"), resolvedTaxonomy(category, nil))

	_, err := p.ClassifyAndScreen(context.Background(), "title", "content")
	assertStatus(t, err, http.StatusBadRequest)
}
