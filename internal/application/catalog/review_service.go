package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/catalog"
)

// ReviewService manages product reviews
type ReviewService struct {
	reviews  catalog.ReviewRepository
	products catalog.ProductRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviews catalog.ReviewRepository, products catalog.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// ListByProduct returns all reviews for a product, newest first
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewView, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	views := make([]ReviewView, len(reviews))
	for i, r := range reviews {
		views[i] = ReviewView{
			ID:        r.ID,
			ProductID: r.ProductID,
			OwnerID:   r.OwnerID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		}
	}
	return views, nil
}

// Create adds a review to an existing product
func (s *ReviewService) Create(ctx context.Context, productID, ownerID uuid.UUID, input ReviewInput) (*ReviewView, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	review, err := catalog.NewReview(productID, ownerID, input.Rating, input.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, err
	}

	return &ReviewView{
		ID:        review.ID,
		ProductID: review.ProductID,
		OwnerID:   review.OwnerID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	}, nil
}
