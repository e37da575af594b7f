package view

import "github.com/matzehuels/syntower/pkg/core/synteny"

const (
	labelMaxLen  = 15
	labelKeepLen = 12
)

// RowLabels returns one label per drawn row. With more than two genomes the
// first genome labels the closing row as well.
func RowLabels(genomes []string) []string {
	out := make([]string, 0, synteny.RowCount(len(genomes)))
	for _, g := range genomes {
		out = append(out, TruncateLabel(g))
	}
	if synteny.Duplicates(len(genomes)) {
		out = append(out, TruncateLabel(genomes[0]))
	}
	return out
}

// TruncateLabel shortens names longer than 15 characters to their first 12
// followed by "...".
func TruncateLabel(s string) string {
	r := []rune(s)
	if len(r) <= labelMaxLen {
		return s
	}
	return string(r[:labelKeepLen]) + "..."
}
