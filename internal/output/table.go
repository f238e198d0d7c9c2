package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/blackwell-systems/uvpick/internal/search"
)

// RenderSearchTable renders ranked search candidates for the non-interactive
// search command. Expects candidates pre-ranked by the caller.
func RenderSearchTable(cands []search.Candidate) string {
	if len(cands) == 0 {
		return "No packages found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-32s %-16s %s\n", "Rank", "Package", "Downloads", "Score"))
	sb.WriteString(strings.Repeat("─", 64))
	sb.WriteString("\n")

	for i, c := range cands {
		sb.WriteString(fmt.Sprintf("%-5d %-32s %-16s %.4f\n",
			i+1,
			truncate(c.Project, 32),
			humanize.Comma(c.DownloadCount),
			c.Score))
	}

	return sb.String()
}

// truncate shortens a string to maxLen, appending "..." when cut.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
