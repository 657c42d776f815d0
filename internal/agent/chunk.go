package agent

import (
	"strings"
)

// Chunk is a slice of a knowledge document
type Chunk struct {
	Source string `json:"source"`
	Index  int    `json:"index"`
	Text   string `json:"text"`
}

// ChunkText splits a document on blank lines and packs paragraphs into chunks
// of at most size runes. A paragraph longer than size is split on whitespace.
func ChunkText(source, text string, size int) []Chunk {
	if size <= 0 {
		size = 800
	}

	var (
		chunks  []Chunk
		current strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, Chunk{Source: source, Index: len(chunks), Text: s})
		}
		current.Reset()
	}

	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for _, piece := range splitLong(para, size) {
			if current.Len() > 0 && len([]rune(current.String()))+len([]rune(piece))+2 > size {
				flush()
			}
			if current.Len() > 0 {
				current.WriteString("\n\n")
			}
			current.WriteString(piece)
		}
	}
	flush()
	return chunks
}

func splitLong(para string, size int) []string {
	if len([]rune(para)) <= size {
		return []string{para}
	}

	var (
		pieces []string
		b      strings.Builder
	)
	for _, word := range strings.Fields(para) {
		if b.Len() > 0 && len([]rune(b.String()))+1+len([]rune(word)) > size {
			pieces = append(pieces, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}
	if b.Len() > 0 {
		pieces = append(pieces, b.String())
	}
	return pieces
}
