package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 512
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 8
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// ChunkText splits text into overlapping chunks, preferring sentence
// boundaries in the back half of each chunk.
func (c *Chunker) ChunkText(text string) []string {
	text = cleanText(strings.TrimSpace(text))
	if len(text) == 0 {
		return nil
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + c.chunkSize
		if end > len(text) {
			end = len(text)
		}

		// chunk edges must never split a rune
		if end < len(text) {
			end = snapToRuneStart(text, end)
			for i := end; i > start+c.chunkSize/2; i-- {
				if text[i] == '.' || text[i] == '!' || text[i] == '?' || text[i] == '\n' {
					end = i + 1
					break
				}
			}
		}
		if end <= start {
			_, size := utf8.DecodeRuneInString(text[start:])
			end = start + size
		}

		chunk := strings.TrimSpace(text[start:end])
		if len(chunk) > 0 {
			chunks = append(chunks, chunk)
		}

		if end >= len(text) {
			break
		}

		newStart := snapToRuneStart(text, end-c.chunkOverlap)
		if newStart <= start {
			_, size := utf8.DecodeRuneInString(text[start:])
			newStart = start + size
		}
		start = newStart
	}

	return chunks
}

// snapToRuneStart walks i back to the nearest rune boundary.
func snapToRuneStart(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(text string) string {
	var result strings.Builder
	prevSpace := false

	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace {
				result.WriteRune(' ')
				prevSpace = true
			}
		} else {
			result.WriteRune(r)
			prevSpace = false
		}
	}

	return result.String()
}
