package cli

import (
	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/domain"
	"github.com/alexanderramin/bachlog/internal/service"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Courses    service.CourseService
	Import     service.ImportService
	Export     service.ExportService
	Compliance service.ComplianceService
	Catalog    catalog.Client
	Modules    domain.ModuleOptions

	// IsInteractive reports whether stdin is a terminal. Destructive
	// commands ask for confirmation only when it returns true.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh confirm form.
	Confirm func(title string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return confirmForm(title)
}
