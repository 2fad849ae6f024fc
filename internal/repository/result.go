package repository

import (
	"catalogdash/internal/dashboard"
	"catalogdash/internal/gallery"
)

// PageResult is one rendered gallery page as exported by the CLI.
type PageResult struct {
	FetchedAt string       `json:"fetched_at"`
	Source    string       `json:"source"`
	View      gallery.View `json:"view"`
	Count     int          `json:"count"`
}

type DashboardResult struct {
	FetchedAt string             `json:"fetched_at"`
	Source    string             `json:"source"`
	Dashboard dashboard.Snapshot `json:"dashboard"`
}
