package agent

import (
	"math"
	"sort"
)

type indexedChunk struct {
	Chunk
	embedding []float64
}

// SearchResult is a chunk with its similarity to the query
type SearchResult struct {
	Chunk
	Score float64 `json:"score"`
}

// VectorIndex is an in-memory embedding index searched by cosine similarity
type VectorIndex struct {
	chunks []indexedChunk
}

func (idx *VectorIndex) Add(chunk Chunk, embedding []float64) {
	idx.chunks = append(idx.chunks, indexedChunk{Chunk: chunk, embedding: embedding})
}

func (idx *VectorIndex) Len() int {
	return len(idx.chunks)
}

// Search returns the k chunks most similar to the query, best first
func (idx *VectorIndex) Search(query []float64, k int) []SearchResult {
	results := make([]SearchResult, 0, len(idx.chunks))
	for _, c := range idx.chunks {
		results = append(results, SearchResult{Chunk: c.Chunk, Score: cosineSimilarity(query, c.embedding)})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
