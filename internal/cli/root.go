// Package cli provides the command-line interface for dbrowse.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/4nzor/dbrowse/internal/config"
	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/db/mongodb"
	"github.com/4nzor/dbrowse/internal/db/mysql"
	"github.com/4nzor/dbrowse/internal/db/postgres"
	"github.com/4nzor/dbrowse/internal/db/sqlite"
	"github.com/4nzor/dbrowse/internal/history"
	"github.com/4nzor/dbrowse/internal/models"
	"github.com/4nzor/dbrowse/internal/session"
	"github.com/4nzor/dbrowse/internal/store"
	"github.com/4nzor/dbrowse/internal/ui"
)

// Version is set at build time.
var Version = "dev"

var githubRepoSlug = "4nzor/dbrowse"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dbrowse",
		Short: "Interactive terminal database browser",
		Long: `dbrowse is a full-screen terminal browser for PostgreSQL, MySQL,
SQLite and MongoDB: a connection tree, a searchable schema list with
size metadata, a paginated data viewer with per-table filters, and a
modal query console with history.`,
		Version:      Version,
		SilenceUsage: true,
		RunE:         runBrowser,
	}
	rootCmd.SetVersionTemplate(`{{printf "dbrowse version %s\n" .Version}}`)
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	return rootCmd
}

// Execute runs the root command. Called by main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func runBrowser(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v (using defaults)\n", err)
		cfg = config.GetDefaults()
	}

	configDir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	connStore := store.New(configDir)
	connections, err := connStore.LoadAll()
	if err != nil {
		return err
	}

	sessCfg := session.DefaultConfig()
	sessCfg.PageSize = cfg.Data.PageSize
	sessCfg.MaxCellWidth = cfg.Data.MaxCellWidth
	sessCfg.DoubleClickWindow = time.Duration(cfg.UI.DoubleClickMs) * time.Millisecond
	sessCfg.HistoryLimit = cfg.History.MaxEntries
	sess := session.New(sessCfg, providerFactory, connections)
	defer sess.Close()

	var histStore *history.Store
	if cfg.History.Persist {
		histStore, err = history.NewStore(filepath.Join(configDir, "history.db"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: console history disabled: %v\n", err)
		} else {
			defer func() { _ = histStore.Close() }()
		}
	}

	app := ui.New(context.Background(), cfg, sess, connStore, histStore)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(app, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// providerFactory maps an engine kind to its unconnected provider.
func providerFactory(kind models.EngineKind) (db.Provider, error) {
	switch kind {
	case models.EnginePostgres:
		return postgres.New(), nil
	case models.EngineMySQL:
		return mysql.New(), nil
	case models.EngineSQLite:
		return sqlite.New(), nil
	case models.EngineMongoDB:
		return mongodb.New(), nil
	default:
		return nil, fmt.Errorf("unsupported engine kind: %q", kind)
	}
}
