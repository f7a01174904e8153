package catalog

import (
	"strings"
	"time"

	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog.
// The product name is the natural key used by catalog synchronization:
// a name is unique in the store and sync runs upsert by exact name match.
type Product struct {
	shared.BaseEntity
	Name            string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description     string          `gorm:"type:text"`
	OriginalPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RetailPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WholesalerPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ImageURL        string          `gorm:"type:text;not null"`
	Stock           int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductFields holds the mutable attributes of a product.
// Sync runs overwrite all of them on every update.
type ProductFields struct {
	Description     string
	OriginalPrice   decimal.Decimal
	RetailPrice     decimal.Decimal
	WholesalerPrice decimal.Decimal
	ImageURL        string
	Stock           int
}

// NewProduct creates a new product with the given name and fields
func NewProduct(name string, fields ProductFields) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := fields.validate(); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		Description:     fields.Description,
		OriginalPrice:   fields.OriginalPrice,
		RetailPrice:     fields.RetailPrice,
		WholesalerPrice: fields.WholesalerPrice,
		ImageURL:        fields.ImageURL,
		Stock:           fields.Stock,
	}, nil
}

// ApplyFields overwrites all mutable attributes
func (p *Product) ApplyFields(fields ProductFields) error {
	if err := fields.validate(); err != nil {
		return err
	}

	p.Description = fields.Description
	p.OriginalPrice = fields.OriginalPrice
	p.RetailPrice = fields.RetailPrice
	p.WholesalerPrice = fields.WholesalerPrice
	p.ImageURL = fields.ImageURL
	p.Stock = fields.Stock
	p.UpdatedAt = time.Now()

	return nil
}

// PriceForRole returns the effective price for the given buyer role
func (p *Product) PriceForRole(role string) decimal.Decimal {
	if role == "wholesaler" {
		return p.WholesalerPrice
	}
	return p.RetailPrice
}

// DiscountPercent returns the rounded discount of the role price
// against the original price, or zero when there is no discount.
func (p *Product) DiscountPercent(role string) int {
	price := p.PriceForRole(role)
	if !p.OriginalPrice.IsPositive() || price.GreaterThanOrEqual(p.OriginalPrice) {
		return 0
	}
	ratio := p.OriginalPrice.Sub(price).Div(p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(ratio.Round(0).IntPart())
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func (f ProductFields) validate() error {
	if f.OriginalPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Original price cannot be negative")
	}
	if f.RetailPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Retail price cannot be negative")
	}
	if f.WholesalerPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Wholesaler price cannot be negative")
	}
	if f.Stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	return nil
}
