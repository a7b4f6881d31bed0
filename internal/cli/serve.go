package cli

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GSKumar1109/claimsreporter/internal/server"
	"github.com/GSKumar1109/claimsreporter/internal/util"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var (
		port    int
		devMode bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the entry page and API, then open the browser",
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (only used when config.toml does not set one)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "development mode: verbose gin logs, no browser")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, info, err := root.loadConfig()
		if err != nil {
			return err
		}
		if port > 0 && !info.PortSpecified {
			cfg.Server.Port = port
		}
		if devMode {
			cfg.Server.DevMode = true
		}

		sess, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer sess.Close()
		log.Printf("data dir: %s", sess.dataDir)

		srv := server.NewServer(cfg, sess.ws, filepath.Join(sess.dataDir, "exports"))
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

		errCh := make(chan error, 1)
		go func() {
			log.Printf("listening on %s", addr)
			errCh <- srv.Run(addr)
		}()

		if !cfg.Server.DevMode {
			if err := util.OpenBrowserWithFallback(url); err != nil {
				log.Printf("could not open a browser, visit %s", url)
			}
		} else {
			log.Printf("dev mode: visit %s", url)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-quit:
			log.Printf("shutting down")
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server: %w", err)
			}
		}

		if err := srv.SaveNow(); err != nil {
			log.Printf("save before exit failed: %v", err)
		}
		return nil
	}
	return cmd
}
