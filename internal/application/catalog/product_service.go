package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/catalog"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// ProductService serves catalog reads with role-based pricing and
// admin catalog writes
type ProductService struct {
	products catalog.ProductRepository
	cache    *cache.ProductCache
	logger   *zap.Logger
}

// NewProductService creates a new ProductService. cache may be nil,
// in which case every read goes to the database.
func NewProductService(products catalog.ProductRepository, productCache *cache.ProductCache, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		cache:    productCache,
		logger:   logger,
	}
}

// List returns a page of products priced for the caller's role
func (s *ProductService) List(ctx context.Context, role string, filter shared.Filter) (*shared.Paginated[ProductView], error) {
	if filter.Page < 1 {
		filter.Page = shared.DefaultFilter().Page
	}
	if filter.PageSize < 1 {
		filter.PageSize = shared.DefaultFilter().PageSize
	}

	variant := fmt.Sprintf("%s:%d:%d:%s", role, filter.Page, filter.PageSize, filter.Search)
	if s.cache != nil {
		var cached shared.Paginated[ProductView]
		if s.cache.GetList(ctx, variant, &cached) {
			return &cached, nil
		}
	}

	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = NewProductView(&products[i], role)
	}

	page := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	if s.cache != nil {
		s.cache.SetList(ctx, variant, page)
	}
	return &page, nil
}

// Get returns one product priced for the caller's role
func (s *ProductService) Get(ctx context.Context, id uuid.UUID, role string) (*ProductView, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := NewProductView(product, role)
	return &view, nil
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*ProductView, error) {
	if _, err := s.products.FindByName(ctx, input.Name); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	product, err := catalog.NewProduct(input.Name, input.fields())
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("Product created", zap.String("name", product.Name))
	view := NewProductView(product, "")
	return &view, nil
}

// Update overwrites a product's mutable fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductView, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Renames must not collide with another product's name
	if input.Name != product.Name {
		if _, err := s.products.FindByName(ctx, input.Name); err == nil {
			return nil, shared.ErrAlreadyExists
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		product.Name = input.Name
	}

	if err := product.ApplyFields(input.fields()); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	view := NewProductView(product, "")
	return &view, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("Product deleted", zap.String("id", id.String()))
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateAll(ctx)
	}
}
