package cmd

import (
	"fmt"
	"log"

	"commitsmith/pkg/diffmodel"
)

// checkStrict runs validateHunk over every hunk in parsed. Under
// --strict the first invariant mismatch aborts the command; otherwise
// mismatches are logged and parsing proceeds, per spec.md §7's parse
// faults being silent by default.
func checkStrict(parsed *diffmodel.ParsedDiff) error {
	for _, h := range parsed.GetAllHunks() {
		if err := diffmodel.ValidateHunk(h); err != nil {
			if strict {
				return fmt.Errorf("validate %s: %w", h.ID, err)
			}
			log.Printf("hunk=%s warning=%v", h.ID, err)
		}
	}
	return nil
}
