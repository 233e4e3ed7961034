package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
)

const dashboardCacheKey = "reporting:dashboard_totals"
const dashboardCacheTTL = 30 * time.Second

// reportingService serves read-side projections, optionally through a
// short-lived cache. Cache failures fall through to the database; the
// projection may lag writes, never the ledger itself.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	cache         portssvc.Cache
}

// NewReportingService creates a new ReportingService. cache may be nil.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, cache portssvc.Cache) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		cache:         cache,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// invalidateDashboard drops the cached dashboard projection after a write
// that changes its inputs. cache may be nil.
func invalidateDashboard(ctx context.Context, cache portssvc.Cache) {
	if cache != nil {
		cache.Delete(ctx, dashboardCacheKey)
	}
}

func (s *reportingService) GetDashboardTotals(ctx context.Context) (*domain.DashboardTotals, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, dashboardCacheKey); ok {
			var cached domain.DashboardTotals
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			logger.Warn("Discarding malformed dashboard cache entry")
		}
	}

	totals, err := s.reportingRepo.GetDashboardTotals(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(totals); err == nil {
			s.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL)
		} else {
			logger.Warn("Failed to serialize dashboard totals for cache", slog.String("error", err.Error()))
		}
	}
	return totals, nil
}
