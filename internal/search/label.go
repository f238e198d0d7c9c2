package search

import (
	"fmt"
	"regexp"
)

// rankPrefixPattern matches the "NN. " rank prefix produced by FormatLabel.
var rankPrefixPattern = regexp.MustCompile(`^\d+\. `)

// FormatLabel renders a 1-based rank prefix ahead of the project name,
// zero-padded to two digits ("01. requests"). Ranks of 100 and above widen
// naturally.
func FormatLabel(rank int, project string) string {
	return fmt.Sprintf("%02d. %s", rank, project)
}

// StripRankPrefix recovers the project name from a label produced by
// FormatLabel. Labels without a rank prefix are returned unchanged, so the
// function is the exact inverse of FormatLabel for every valid candidate.
func StripRankPrefix(label string) string {
	return rankPrefixPattern.ReplaceAllString(label, "")
}
