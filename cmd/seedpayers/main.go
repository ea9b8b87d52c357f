// Command seedpayers converts a payer master Excel file into a SQL seed file
// for one tenant. The workbook's first sheet is expected to carry payer name
// in column A and payer code in column B, with a header row.
// Usage: go run ./cmd/seedpayers <tenant-slug> [xlsx-path]
// Output: db/seeds/payers.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type payerEntry struct {
	name string
	code string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: seedpayers <tenant-slug> [xlsx-path]")
		os.Exit(1)
	}
	tenantSlug := os.Args[1]

	xlsxPath := "payer_master.xlsx"
	if len(os.Args) > 2 {
		xlsxPath = os.Args[2]
	}
	outPath := "db/seeds/payers.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parsePayerSheet(f)
	if err != nil {
		return fmt.Errorf("parse payer sheet: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no payer rows found in %s", xlsxPath)
	}
	log.Printf("payer sheet: %d entries", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Payer seed data generated from Excel.",
		fmt.Sprintf("-- %d payers for tenant %q in batches of %d.", len(entries), tenantSlug, batchSize),
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, tenantSlug, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d payers (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parsePayerSheet reads the first sheet. Column A=payer name, B=payer code.
// Data starts at row index 1 (header row skipped). Duplicate codes keep the
// first occurrence.
func parsePayerSheet(f *excelize.File) ([]payerEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []payerEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := strings.TrimSpace(cellVal(row, 0))
		code := strings.TrimSpace(cellVal(row, 1))
		if name == "" || code == "" {
			continue
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		entries = append(entries, payerEntry{name: name, code: code})
	}
	return entries, nil
}

// writeBatch emits one multi-row INSERT that resolves the tenant by slug.
func writeBatch(out *os.File, tenantSlug string, entries []payerEntry) error {
	var sb strings.Builder
	sb.WriteString("INSERT INTO payers (tenant_id, name, payer_code, is_active)\n")
	sb.WriteString("SELECT t.id, v.name, v.payer_code, TRUE\n")
	sb.WriteString("FROM (VALUES\n")
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("  (%s, %s)", sqlString(e.name), sqlString(e.code)))
		if i < len(entries)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(") AS v(name, payer_code)\n")
	sb.WriteString(fmt.Sprintf("CROSS JOIN (SELECT id FROM tenants WHERE slug = %s) t\n", sqlString(tenantSlug)))
	sb.WriteString("ON CONFLICT (tenant_id, payer_code) DO NOTHING;\n")

	_, err := fmt.Fprintln(out, sb.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
