package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fitsview/hdu"
)

// EncodeTable writes t to w in the format named by ext: ".csv", ".tsv" or
// ".tex" (case-insensitive). Cells keep their load-time string rendering;
// CSV and TSV quote as needed, LaTeX escapes its special characters.
func EncodeTable(w io.Writer, ext string, t *hdu.TableData) error {
	if t == nil || len(t.Names) == 0 {
		return errors.New("no table to export")
	}
	switch strings.ToLower(ext) {
	case ".csv":
		return writeSeparated(w, t, ',')
	case ".tsv":
		return writeSeparated(w, t, '\t')
	case ".tex":
		return writeLaTeX(w, t)
	}
	return fmt.Errorf("unsupported table format %q", ext)
}

// Table writes t to path, picking the format from the file extension.
func Table(path string, t *hdu.TableData) error {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".csv", ".tsv", ".tex":
	default:
		return fmt.Errorf("unsupported table format %q", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := EncodeTable(f, ext, t); err != nil {
		f.Close()
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return f.Close()
}

func writeSeparated(w io.Writer, t *hdu.TableData, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(t.Names); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeLaTeX(w io.Writer, t *hdu.TableData) error {
	bw := bufio.NewWriter(w)

	layout := strings.TrimSuffix(strings.Repeat("l | ", len(t.Names)), " | ")
	fmt.Fprintf(bw, "\\begin{tabular}{%s}\n", layout)
	bw.WriteString("\\hline\n")

	writeLaTeXRow(bw, t.Names)
	bw.WriteString("\\hline\n")
	for _, row := range t.Rows {
		writeLaTeXRow(bw, row)
	}

	bw.WriteString("\\hline\n")
	bw.WriteString("\\end{tabular}\n")
	return bw.Flush()
}

func writeLaTeXRow(bw *bufio.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			bw.WriteString(" & ")
		}
		bw.WriteString(EscapeLaTeX(cell))
	}
	bw.WriteString(" \\\\\n")
}

// EscapeLaTeX rewrites the ten characters LaTeX treats specially so a cell
// survives verbatim in a tabular body. Each input character is escaped
// exactly once.
func EscapeLaTeX(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&', '%', '$', '#', '_', '{', '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '~':
			b.WriteString("\\textasciitilde{}")
		case '^':
			b.WriteString("\\textasciicircum{}")
		case '\\':
			b.WriteString("\\textbackslash{}")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
