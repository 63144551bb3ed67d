// Package report renders a comparison Summary for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"semscore/internal/aggregate"
	"semscore/internal/domain"
)

// excerptWidth caps the excerpt text printed per worst-chunk row.
const excerptWidth = 120

// Print writes the console summary: aggregate lines per dimension and,
// when showChunks > 0, the lowest-F1 chunks with their excerpts.
func Print(w io.Writer, summary domain.Summary, showChunks int) {
	fmt.Fprintln(w, "Semantic similarity summary")
	fmt.Fprintf(w, "  Precision  mean=%.4f  weighted=%.4f\n", summary.Precision.Mean, summary.Precision.Weighted)
	fmt.Fprintf(w, "  Recall     mean=%.4f  weighted=%.4f\n", summary.Recall.Mean, summary.Recall.Weighted)
	fmt.Fprintf(w, "  F1         mean=%.4f  weighted=%.4f\n", summary.F1.Mean, summary.F1.Weighted)
	fmt.Fprintf(w, "  Chunks compared: %d\n", summary.Chunks)

	if showChunks <= 0 {
		return
	}

	fmt.Fprintln(w, "\nWorst chunks by F1:")
	for _, row := range aggregate.WorstChunks(summary, showChunks) {
		fmt.Fprintf(w, "  #%02d F1=%.4f P=%.4f R=%.4f | Cand: %q | Ref: %q\n",
			row.Position, row.F1, row.Precision, row.Recall,
			flatten(row.CandidateExcerpt), flatten(row.ReferenceExcerpt))
	}
}

// WriteJSON stores the full Summary, per-chunk details included, as an
// indented JSON document.
func WriteJSON(path string, summary domain.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// flatten strips newlines and caps the excerpt width for single-line rows.
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) > excerptWidth {
		return string(runes[:excerptWidth])
	}
	return s
}
