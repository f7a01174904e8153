package sync

import (
	"context"
	"strconv"

	"github.com/nexkart/backend/internal/domain/catalog"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/infrastructure/catalogsync"
	"github.com/nexkart/backend/internal/infrastructure/tabular"
	"go.uber.org/zap"
)

// SyncService exposes manual catalog synchronization: on-demand runs
// against the remote sheet, sheet uploads, and catalog export.
type SyncService struct {
	coordinator *catalogsync.Coordinator
	products    catalog.ProductRepository
	logger      *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(coordinator *catalogsync.Coordinator, products catalog.ProductRepository, logger *zap.Logger) *SyncService {
	return &SyncService{coordinator: coordinator, products: products, logger: logger}
}

// Trigger runs a manual sync against the remote sheet. Manual runs
// bypass the change check and always reconcile. A busy result is not
// an error; the caller reports it as an outcome.
func (s *SyncService) Trigger(ctx context.Context) (*catalogsync.RunResult, error) {
	result, err := s.coordinator.TryRun(ctx, catalogsync.TriggerManual)
	if err != nil {
		s.logger.Error("Manual sync failed", zap.Error(err))
	}
	return result, err
}

// Import reconciles uploaded sheet bytes into the catalog. Imports
// never advance the poller's change marker, so the next scheduled run
// still compares against the last remote state.
func (s *SyncService) Import(ctx context.Context, data []byte) (*catalogsync.RunResult, error) {
	result, err := s.coordinator.TryImport(ctx, data)
	if err != nil {
		s.logger.Error("Sheet import failed", zap.Error(err))
	}
	return result, err
}

// Export renders the full catalog as a sheet in the canonical column
// order, suitable for re-import.
func (s *SyncService) Export(ctx context.Context) ([]byte, error) {
	filter := shared.Filter{Page: 1, PageSize: 0}
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	writer, err := tabular.NewWriter(catalogsync.Columns)
	if err != nil {
		return nil, err
	}
	for i := range products {
		p := &products[i]
		row := map[string]string{
			catalogsync.ColumnName:            p.Name,
			catalogsync.ColumnDescription:     p.Description,
			catalogsync.ColumnOriginalPrice:   p.OriginalPrice.String(),
			catalogsync.ColumnImageURL:        p.ImageURL,
			catalogsync.ColumnStock:           strconv.Itoa(p.Stock),
			catalogsync.ColumnRetailPrice:     p.RetailPrice.String(),
			catalogsync.ColumnWholesalerPrice: p.WholesalerPrice.String(),
		}
		if err := writer.WriteRow(row); err != nil {
			return nil, err
		}
	}
	return writer.Bytes()
}
