package movie

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// joinList encodes names as one CSV record so names containing commas
// survive the round trip. Blank names are dropped.
func joinList(items []string) (string, error) {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(kept); err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func splitList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = -1
	items, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return items, nil
}
