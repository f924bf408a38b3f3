package moderation

import (
	"context"
	"net/http"

	"knowshare/apperr"
	"knowshare/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PredictionSource is the remote classifier contract; satisfied by
// *Classifier and stubbed in tests.
type PredictionSource interface {
	Predict(ctx context.Context, text string) ([]Prediction, error)
}

// Taxonomy resolves predicted display names against the stored taxonomy.
// Lookups return (nil, nil) when no document matches.
type Taxonomy interface {
	FindCategory(ctx context.Context, name string) (*models.Category, error)
	FindSubcategory(ctx context.Context, name string, categoryID primitive.ObjectID) (*models.Subcategory, error)
}

// Result carries the resolved taxonomy assignment and the profanity
// annotation for one create request.
type Result struct {
	CategoryID      primitive.ObjectID
	CategoryName    string
	SubcategoryID   primitive.ObjectID
	SubcategoryName string
	Flagged         bool
	FlagReason      string
}

type Pipeline struct {
	classifier PredictionSource
	taxonomy   Taxonomy
	screen     *Screen
}

func NewPipeline(classifier PredictionSource, taxonomy Taxonomy) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		taxonomy:   taxonomy,
		screen:     NewScreen(),
	}
}

// ClassifyAndScreen runs the profanity screen and the topic classification
// gate over title+content. Category and subcategory resolution must both
// succeed or the whole create request aborts; the profanity result only
// annotates.
func (p *Pipeline) ClassifyAndScreen(ctx context.Context, title, content string) (*Result, error) {
	const op = "moderation"

	result := &Result{}
	if p.screen.IsProfane(title + " " + content) {
		result.Flagged = true
		result.FlagReason = FlagReason
	}

	predictions, err := p.classifier.Predict(ctx, title+" "+content)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to predict category/subcategory from classifier service", http.StatusInternalServerError, op)
	}
	if len(predictions) == 0 {
		return nil, apperr.New("Classifier did not return any predictions", http.StatusInternalServerError, op)
	}

	top := predictions[0]
	if top.Label.Category == "" || top.Label.SubCategory == "" {
		return nil, apperr.New("Classifier returned invalid prediction structure", http.StatusInternalServerError, op)
	}

	category, err := p.taxonomy.FindCategory(ctx, top.Label.Category)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to look up predicted category", http.StatusInternalServerError, op)
	}
	if category == nil {
		return nil, apperr.New(`Predicted category "`+top.Label.Category+`" not found`, http.StatusBadRequest, op)
	}

	subcategory, err := p.taxonomy.FindSubcategory(ctx, top.Label.SubCategory, category.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to look up predicted subcategory", http.StatusInternalServerError, op)
	}
	if subcategory == nil {
		return nil, apperr.New(`Subcategory "`+top.Label.SubCategory+`" not found in category "`+category.Name+`"`, http.StatusBadRequest, op)
	}

	result.CategoryID = category.ID
	result.CategoryName = category.Name
	result.SubcategoryID = subcategory.ID
	result.SubcategoryName = subcategory.Name
	return result, nil
}
