package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/finreport_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finreport_backend/internal/core/ports/services"
	"github.com/SscSPs/finreport_backend/internal/platform/cache"
	"github.com/SscSPs/finreport_backend/internal/platform/config"
	"github.com/SscSPs/finreport_backend/internal/utils/adjustment"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	adjuster, err := adjustment.NewAdjuster(adjustment.DefaultRules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile adjustment rules: %w", err)
	}

	container := &portssvc.ServiceContainer{}
	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		WithAdjuster(adjuster),
		WithReportCache(cache.NewReportCache(cfg.ReportCacheSize, cfg.ReportCacheTTL)),
	)

	return container, nil
}
