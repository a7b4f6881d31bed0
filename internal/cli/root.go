// Package cli wires the cobra commands: serve (default), export, import and report.
package cli

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GSKumar1109/claimsreporter/internal/config"
	"github.com/GSKumar1109/claimsreporter/internal/service/store"
	"github.com/GSKumar1109/claimsreporter/internal/service/workspace"
	sqlitestore "github.com/GSKumar1109/claimsreporter/internal/store"
)

type rootOptions struct {
	configPath string
	dataDir    string
}

// NewRootCommand builds the command tree. Running without a subcommand serves the page.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	serve := newServeCommand(opts)
	root := &cobra.Command{
		Use:   "claimsreporter",
		Short: "Depot sales entry and claim reports",
		Long: `claimsreporter records per-depot syndicate sales (cases and rate per product),
keeps one consolidated row per syndicate and renders claim reports as a web page,
Excel workbook, JSON document or CSV.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config.toml path (default: next to the executable)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (overrides config)")
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve)
	root.AddCommand(newExportCommand(opts))
	root.AddCommand(newImportCommand(opts))
	root.AddCommand(newReportCommand(opts))
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func (o *rootOptions) loadConfig() (*config.AppConfig, config.LoadConfigInfo, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, info, err := config.LoadConfigFrom(path)
	if err != nil {
		return nil, info, err
	}
	if o.dataDir != "" {
		cfg.Data.DataDir = o.dataDir
	}
	return cfg, info, nil
}

// session an opened data directory
type session struct {
	dataDir string
	kv      *sqlitestore.Store
	ws      *workspace.Manager
}

func openSession(cfg *config.AppConfig) (*session, error) {
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}
	kv, err := sqlitestore.New(config.DatabasePath(dataDir))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	opts := workspace.Options{}
	if cfg.Data.AutoBackup {
		opts.BackupDir = filepath.Join(dataDir, "backups")
	}
	ws, err := workspace.NewManager(kv, store.NewMemoryStore(), opts)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	if err := ws.Load(); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}
	return &session{dataDir: dataDir, kv: kv, ws: ws}, nil
}

func (s *session) Close() error {
	return s.kv.Close()
}
