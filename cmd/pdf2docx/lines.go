// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2docx/internal/convert"
	"github.com/pdiddy/pdf2docx/internal/lines"
	"github.com/pdiddy/pdf2docx/internal/source"
	"github.com/pdiddy/pdf2docx/pkg/types"
)

var linesCmd = &cobra.Command{
	Use:   "lines <file-or-url>",
	Short: "Print the reconstructed lines of each page as YAML",
	Long: `Lines runs only the extraction and line reconstruction stages and prints
the result as a YAML list of pages. Use it to inspect how fragments are
grouped before producing a document.`,
	Args: cobra.ExactArgs(1),
	RunE: runLines,
}

func init() {
	linesCmd.Flags().String("backend", "", "text extraction backend: native or pdftotext (default from config)")
	linesCmd.Flags().Float64("threshold", 0, "line break distance in page units (default 5)")
	rootCmd.AddCommand(linesCmd)
}

func runLines(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Conversion.Backend = types.Backend(b)
	}
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if threshold <= 0 {
		threshold = cfg.Conversion.LineThreshold
	}

	loader, err := source.ByName(cfg.Conversion.Backend)
	if err != nil {
		return err
	}
	if err := loader.Available(); err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd)
	defer stop()

	src, err := openInput(&http.Client{Timeout: cfg.HTTP.Timeout}, cfg.HTTP)(ctx, args[0])
	if err != nil {
		return err
	}

	pages, err := pageLines(ctx, loader, src, lines.Reconstructor{Threshold: threshold})
	if err != nil {
		return err
	}
	return writeYAML(cmd.OutOrStdout(), pages)
}

// pageLines applies the same input check as convert before extracting.
func pageLines(ctx context.Context, loader source.Loader, src types.Source, rec lines.Reconstructor) ([]types.PageContent, error) {
	if !convert.IsPDF(src) {
		return nil, fmt.Errorf("%w: %s", convert.ErrInvalidInput, src.Name)
	}
	doc, err := loader.Open(ctx, src.Data)
	if err != nil {
		return nil, err
	}
	pages := make([]types.PageContent, 0, doc.NumPages())
	for i := 1; i <= doc.NumPages(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frags, err := doc.Fragments(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, types.PageContent{PageNumber: i, Lines: rec.Reconstruct(frags)})
	}
	return pages, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
