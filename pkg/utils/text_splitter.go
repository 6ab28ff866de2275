package utils

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators are tried in order, coarsest first. The empty separator splits per rune.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// RecursiveSplitter cuts text into chunks of at most ChunkSize runes, carrying up
// to ChunkOverlap runes of trailing context into the next chunk.
type RecursiveSplitter struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

func NewRecursiveSplitter(chunkSize, overlap int) *RecursiveSplitter {
	if overlap >= chunkSize {
		overlap = 0
	}
	return &RecursiveSplitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: overlap,
		Separators:   DefaultSeparators,
	}
}

func (s *RecursiveSplitter) Split(text string) []string {
	return s.split(text, s.Separators)
}

func (s *RecursiveSplitter) split(text string, separators []string) []string {
	separator := ""
	var rest []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			rest = separators[i+1:]
			break
		}
	}

	var pieces []string
	if separator == "" {
		pieces = strings.Split(text, "")
	} else {
		pieces = strings.Split(text, separator)
	}

	var chunks, good []string
	for _, p := range pieces {
		if p == "" {
			continue
		}
		if runeLen(p) < s.ChunkSize {
			good = append(good, p)
			continue
		}
		if len(good) > 0 {
			chunks = append(chunks, s.merge(good, separator)...)
			good = nil
		}
		if len(rest) == 0 {
			chunks = append(chunks, p)
		} else {
			chunks = append(chunks, s.split(p, rest)...)
		}
	}
	if len(good) > 0 {
		chunks = append(chunks, s.merge(good, separator)...)
	}
	return chunks
}

// merge packs small pieces into chunks, sliding a window so consecutive chunks share overlap.
func (s *RecursiveSplitter) merge(pieces []string, separator string) []string {
	sepLen := runeLen(separator)
	var chunks, window []string
	total := 0

	for _, p := range pieces {
		n := runeLen(p)
		joined := 0
		if len(window) > 0 {
			joined = sepLen
		}
		if total+n+joined > s.ChunkSize && len(window) > 0 {
			if c := strings.TrimSpace(strings.Join(window, separator)); c != "" {
				chunks = append(chunks, c)
			}
			for len(window) > 0 && (total > s.ChunkOverlap || (total+n+sepLen > s.ChunkSize && total > 0)) {
				total -= runeLen(window[0])
				if len(window) > 1 {
					total -= sepLen
				}
				window = window[1:]
			}
		}
		window = append(window, p)
		total += n
		if len(window) > 1 {
			total += sepLen
		}
	}
	if c := strings.TrimSpace(strings.Join(window, separator)); c != "" {
		chunks = append(chunks, c)
	}
	return chunks
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
