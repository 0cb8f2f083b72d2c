package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkTextEmpty(t *testing.T) {
	c := NewChunker(100, 10)
	if chunks := c.ChunkText("   \n\t  "); chunks != nil {
		t.Errorf("whitespace-only input produced %d chunks", len(chunks))
	}
}

func TestChunkTextShortInputIsOneChunk(t *testing.T) {
	c := NewChunker(100, 10)
	chunks := c.ChunkText("a short sentence.")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "a short sentence." {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestChunkTextRespectsSize(t *testing.T) {
	c := NewChunker(64, 8)
	text := strings.Repeat("some words in a sentence. ", 40)
	chunks := c.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 64 {
			t.Errorf("chunk %d is %d bytes, max 64", i, len(chunk))
		}
	}
}

func TestChunkTextPrefersSentenceBoundaries(t *testing.T) {
	c := NewChunker(50, 5)
	text := "First sentence here. Second sentence follows. Third one closes it out."
	chunks := c.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk does not end at a sentence boundary: %q", chunks[0])
	}
}

func TestChunkTextCoversWholeInput(t *testing.T) {
	c := NewChunker(40, 6)
	text := strings.TrimSpace(strings.Repeat("alpha beta gamma delta. ", 20))
	chunks := c.ChunkText(text)

	// overlapping chunks must jointly cover the cleaned text
	cleaned := cleanText(text)
	pos := 0
	for _, chunk := range chunks {
		idx := strings.Index(cleaned[pos:], chunk)
		if idx == -1 {
			// overlap can step backwards, retry from the start
			idx = strings.Index(cleaned, chunk)
			if idx == -1 {
				t.Fatalf("chunk %q not found in input", chunk)
			}
			pos = idx
		} else {
			pos += idx
		}
	}
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(cleaned, last) {
		t.Errorf("last chunk %q does not reach the end of the input", last)
	}
}

func TestChunkTextKeepsRuneBoundaries(t *testing.T) {
	c := NewChunker(64, 8)
	// multi-byte prose with no ASCII sentence marks forces edges to
	// land inside the text rather than at punctuation
	text := strings.Repeat("这是一个很长的中文段落没有英文句号", 20)
	chunks := c.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is invalid UTF-8: %q", i, chunk)
		}
	}
}

func TestChunkTextMixedScriptStaysValid(t *testing.T) {
	c := NewChunker(32, 4)
	text := strings.Repeat("résumé naïve façade Straße. ", 15)
	for i, chunk := range c.ChunkText(text) {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is invalid UTF-8: %q", i, chunk)
		}
	}
}

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	got := cleanText("a\t b\n\nc   d")
	if got != "a b c d" {
		t.Errorf("cleanText = %q", got)
	}
}

func TestNewChunkerDefaults(t *testing.T) {
	c := NewChunker(0, -1)
	if c.chunkSize != 512 {
		t.Errorf("chunkSize = %d", c.chunkSize)
	}
	if c.chunkOverlap != 64 {
		t.Errorf("chunkOverlap = %d", c.chunkOverlap)
	}
}
