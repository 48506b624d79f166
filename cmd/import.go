package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/statement"
)

var (
	flagStatementType string
	flagCommit        bool
)

var importCmd = &cobra.Command{
	Use:   "import <file|dir>",
	Short: "Upload bank or card statements",
	Long: "Uploads one statement, or every .csv, .xls, .xlsx and .pdf file under a directory.\n" +
		"With --commit the parsed rows are imported as transactions.",
	Args: cobra.ExactArgs(1),
	RunE: run(runImport),
}

func init() {
	importCmd.Flags().StringVar(&flagStatementType, "type", "", "Statement type, overriding the file extension (CSV, EXCEL, PDF)")
	importCmd.Flags().BoolVar(&flagCommit, "commit", false, "Import the parsed transactions after upload")
	rootCmd.AddCommand(importCmd)
}

func runImport(ctx context.Context, a *app, args []string) error {
	paths, err := statementPaths(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(a.out, "  No statements found in %s\n", args[0])
		return nil
	}

	var failed int
	for _, p := range paths {
		if err := importOne(ctx, a, p); err != nil {
			if ctx.Err() != nil {
				return err
			}
			failed++
			fmt.Fprintln(a.out, "  "+cli.RenderWarning(fmt.Sprintf("%s: %v", p, err)))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(paths))
	}
	return nil
}

func statementPaths(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}
	files, err := statement.Scan(target)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", target, err)
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths, nil
}

func importOne(ctx context.Context, a *app, path string) error {
	up, closer, f, err := statement.Open(path)
	if err != nil {
		return err
	}
	defer closer.Close()

	typ := f.Type
	if flagStatementType != "" {
		typ = flagStatementType
	}
	fmt.Fprintf(a.out, "  Uploading %s as %s...\n", f.Name, typ)
	res, err := a.client.UploadStatement(ctx, up, typ)
	if err != nil {
		return err
	}
	printImportResult(a, res)

	if !flagCommit || (res.UploadID == "" && len(res.Transactions) == 0) {
		return nil
	}
	req := api.ImportRequest{UploadID: res.UploadID}
	if req.UploadID == "" {
		req.Transactions = res.Transactions
	}
	committed, err := a.client.ImportStatement(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Committed %d transactions from %s\n", committed.Imported, f.Name)
	return nil
}
