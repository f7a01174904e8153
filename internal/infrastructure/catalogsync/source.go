package catalogsync

import (
	"fmt"
	"strings"

	"github.com/nexkart/backend/internal/infrastructure/tabular"
)

// Column names of the catalog sheet. Export writes them in this order.
const (
	ColumnName            = "name"
	ColumnDescription     = "description"
	ColumnOriginalPrice   = "original_price"
	ColumnImageURL        = "image_url"
	ColumnStock           = "stock"
	ColumnRetailPrice     = "retail_price"
	ColumnWholesalerPrice = "wholesaler_price"
)

// Columns is the full sheet column contract in canonical order
var Columns = []string{
	ColumnName,
	ColumnDescription,
	ColumnOriginalPrice,
	ColumnImageURL,
	ColumnStock,
	ColumnRetailPrice,
	ColumnWholesalerPrice,
}

// SourceRecord is one raw sheet row. All cells stay strings here;
// numeric coercion is the reconciler's job so a bad cell aborts the
// whole run instead of the parse.
type SourceRecord struct {
	Line            int
	Name            string
	Description     string
	OriginalPrice   string
	ImageURL        string
	Stock           string
	RetailPrice     string
	WholesalerPrice string
}

// ParseRecords decodes raw sheet bytes into source records
func ParseRecords(data []byte) ([]SourceRecord, error) {
	parser, err := tabular.NewParserFromBytes(data)
	if err != nil {
		return nil, &ParseError{Message: "invalid document", Err: err}
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, &ParseError{Message: "invalid header", Err: err}
	}
	if missing := parser.MissingHeaders(Columns); len(missing) > 0 {
		return nil, &ParseError{Message: fmt.Sprintf("missing columns: %s", strings.Join(missing, ", "))}
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, &ParseError{Message: "malformed row", Err: err}
	}

	records := make([]SourceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, SourceRecord{
			Line:            row.LineNumber,
			Name:            row.Get(ColumnName),
			Description:     row.Get(ColumnDescription),
			OriginalPrice:   row.Get(ColumnOriginalPrice),
			ImageURL:        row.Get(ColumnImageURL),
			Stock:           row.Get(ColumnStock),
			RetailPrice:     row.Get(ColumnRetailPrice),
			WholesalerPrice: row.Get(ColumnWholesalerPrice),
		})
	}
	return records, nil
}
