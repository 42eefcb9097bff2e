// Package cli provides the command-line interface for the ementas extractor.
package cli

import (
	"github.com/law-makers/ementas/internal/app"
)

// Global reference shared by commands; set up in PersistentPreRunE and
// cleared in PersistentPostRun.
var globalApp *app.Application

// SetApp stores the Application for commands to access
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp retrieves the Application
func GetApp() *app.Application {
	return globalApp
}
