package ports

import (
	"io"

	"exodash/domain/catalog"
	"exodash/internal/aggregate"
)

// CatalogReader loads and cleans an exoplanet archive export
type CatalogReader interface {
	Load(path string) (*catalog.Table, *catalog.CleaningReport, error)
	Read(r io.Reader) (*catalog.Table, *catalog.CleaningReport, error)
}

// DashboardRenderer writes the composed charts to a file
type DashboardRenderer interface {
	Save(path string, views aggregate.Views) error
}

// SummaryWriter exports the aggregate views alongside the dashboard
type SummaryWriter interface {
	Write(path string, views aggregate.Views, report *catalog.CleaningReport) error
}
