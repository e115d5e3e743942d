package scan

// DefaultChunkSize is the character window used when splitting file
// content for submission.
const DefaultChunkSize = 5000

// Split slices content into contiguous non-overlapping windows of at most
// maxLen bytes, preserving order; the last chunk may be shorter. Windows
// are purely positional — no attempt is made to split on line or token
// boundaries, so a finding's reported line number is relative to its
// chunk. Empty content yields no chunks; the engine submits a single empty
// chunk for empty eligible files so they still produce a report.
func Split(content string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultChunkSize
	}
	if len(content) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(content)+maxLen-1)/maxLen)
	for i := 0; i < len(content); i += maxLen {
		end := i + maxLen
		if end > len(content) {
			end = len(content)
		}
		chunks = append(chunks, content[i:end])
	}
	return chunks
}
