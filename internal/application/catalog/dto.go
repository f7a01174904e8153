package catalog

import (
	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductView is the buyer-facing projection of a product. Price is
// already resolved for the caller's role.
type ProductView struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountPercent int             `json:"discount_percent"`
	ImageURL        string          `json:"image_url"`
	Stock           int             `json:"stock"`
	InStock         bool            `json:"in_stock"`
}

// NewProductView projects a product for the given buyer role
func NewProductView(p *catalog.Product, role string) ProductView {
	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.PriceForRole(role),
		OriginalPrice:   p.OriginalPrice,
		DiscountPercent: p.DiscountPercent(role),
		ImageURL:        p.ImageURL,
		Stock:           p.Stock,
		InStock:         p.Stock > 0,
	}
}

// ProductInput carries admin create/update fields
type ProductInput struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	RetailPrice     decimal.Decimal `json:"retail_price"`
	WholesalerPrice decimal.Decimal `json:"wholesaler_price"`
	ImageURL        string          `json:"image_url"`
	Stock           int             `json:"stock"`
}

func (in ProductInput) fields() catalog.ProductFields {
	return catalog.ProductFields{
		Description:     in.Description,
		OriginalPrice:   in.OriginalPrice,
		RetailPrice:     in.RetailPrice,
		WholesalerPrice: in.WholesalerPrice,
		ImageURL:        in.ImageURL,
		Stock:           in.Stock,
	}
}

// ReviewView is the rendered review for a product page
type ReviewView struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt string    `json:"created_at"`
}

// ReviewInput carries a new review
type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
