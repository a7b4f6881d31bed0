package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GSKumar1109/claimsreporter/internal/config"
	"github.com/GSKumar1109/claimsreporter/internal/csvexport"
	"github.com/GSKumar1109/claimsreporter/internal/service/excel"
	"github.com/GSKumar1109/claimsreporter/internal/service/workspace"
)

func newExportCommand(root *rootOptions) *cobra.Command {
	var depot, format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one depot as json, xlsx or csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := root.loadConfig()
			if err != nil {
				return err
			}
			sess, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer sess.Close()

			path, err := exportDepot(sess.ws, cfg, depot, strings.ToLower(format), out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", depot, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&depot, "depot", "", "depot name (required)")
	cmd.Flags().StringVar(&format, "format", "json", "json, xlsx or csv")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: the download file name)")
	_ = cmd.MarkFlagRequired("depot")
	return cmd
}

func exportDepot(ws *workspace.Manager, cfg *config.AppConfig, depot, format, out string) (string, error) {
	switch format {
	case "json":
		doc, err := ws.ExportDocument(depot)
		if err != nil {
			return "", err
		}
		if out == "" {
			out = workspace.ExportFileName(depot)
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode document: %w", err)
		}
		return out, os.WriteFile(out, data, 0o644)

	case "xlsx":
		view, err := ws.View(depot, true)
		if err != nil {
			return "", err
		}
		f, err := excel.NewExporter().ExportDepot(excel.DepotSheet{
			CompanyName: cfg.Report.CompanyName,
			ReportTitle: cfg.Report.ReportTitle,
			Depot:       view.Depot,
			Period:      view.Period,
			Products:    view.Products,
			Report:      view.Report,
		})
		if err != nil {
			return "", err
		}
		defer f.Close()
		if out == "" {
			out = excel.FileName(depot)
		}
		return out, f.SaveAs(out)

	case "csv":
		doc, err := ws.ExportDocument(depot)
		if err != nil {
			return "", err
		}
		if out == "" {
			out = csvexport.FileName(depot)
		}
		file, err := os.Create(out)
		if err != nil {
			return "", err
		}
		if err := csvexport.Write(file, doc.Products, doc.Rows); err != nil {
			_ = file.Close()
			return "", err
		}
		return out, file.Close()
	}
	return "", fmt.Errorf("unknown format %q (want json, xlsx or csv)", format)
}

func newImportCommand(root *rootOptions) *cobra.Command {
	var depot, file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace one depot's rows with an exported JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			cfg, _, err := root.loadConfig()
			if err != nil {
				return err
			}
			sess, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer sess.Close()

			result, err := sess.ws.ImportDocument(depot, data)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows into %s (%d products)\n",
				result.Imported, result.Depot, len(result.Products))
			return nil
		},
	}
	cmd.Flags().StringVar(&depot, "depot", "", "depot name (required)")
	cmd.Flags().StringVar(&file, "file", "", "JSON document (required)")
	_ = cmd.MarkFlagRequired("depot")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
