package cmd

import (
	"os"

	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: application,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	cfg := r.app.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	driver := cfg.Database.Driver
	if driver == "" {
		driver = store.DriverSQLite
	}

	dbPath := cfg.Database.Path
	dbExists := false
	if driver == store.DriverPostgres {
		dbPath = "(postgres DSN)"
		dbExists = true
	} else if _, err := os.Stat(dbPath); err == nil {
		dbExists = true
	}

	items := views.SystemInfoItem{
		ConfigPath: configPath,
		Driver:     driver,
		DBPath:     dbPath,
		DBExists:   dbExists,
		LogFile:    cfg.Log.File,
		LoggedInAs: cfg.Session.Username,
		AppDataDir: getAppDataDirOrUnknown(),
	}

	return views.RenderSystemInfo(items)
}

func getAppDataDirOrUnknown() string {
	dir, err := app.AppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
