package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecursiveSplitter_ShortTextIsOneChunk(t *testing.T) {
	s := NewRecursiveSplitter(400, 50)
	assert.Equal(t, []string{"Employees get 20 vacation days."}, s.Split("Employees get 20 vacation days."))
	assert.Empty(t, s.Split(""))
}

func TestRecursiveSplitter_RespectsChunkSize(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("The probation period lasts ninety days for all new hires. ")
		if i%5 == 4 {
			b.WriteString("\n\n")
		}
	}

	s := NewRecursiveSplitter(400, 50)
	chunks := s.Split(b.String())
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 400)
		assert.NotEmpty(t, c)
	}
}

func TestRecursiveSplitter_Overlap(t *testing.T) {
	words := make([]string, 200)
	for i := range words {
		words[i] = "word"
	}
	s := NewRecursiveSplitter(100, 20)
	chunks := s.Split(strings.Join(words, " "))
	require.Greater(t, len(chunks), 2)

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev[len(prev)-14:]
		assert.True(t, strings.HasPrefix(chunks[i], strings.TrimSpace(tail)), "chunk %d should start with the tail of chunk %d", i, i-1)
	}
}

func TestRecursiveSplitter_FallsBackToRunes(t *testing.T) {
	s := NewRecursiveSplitter(10, 0)
	chunks := s.Split(strings.Repeat("é", 25))
	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("é", 10), chunks[0])
	assert.Equal(t, strings.Repeat("é", 5), chunks[2])
}

func TestNewRecursiveSplitter_ClampsOverlap(t *testing.T) {
	s := NewRecursiveSplitter(10, 10)
	assert.Equal(t, 0, s.ChunkOverlap)
}
