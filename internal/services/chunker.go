package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText packs whole lines into chunks of at most maxChunkSize runes. Lines that
// are too long on their own are split into sentences, then cut. Each chunk after the
// first starts with the last overlap runes of its predecessor.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var chunks []string
	var lines []string
	size := 0

	for _, unit := range chunkUnits(text, maxChunkSize-overlap-1) {
		n := utf8.RuneCountInString(unit)
		if size > 0 && size+1+n > maxChunkSize {
			chunk := strings.Join(lines, "\n")
			chunks = append(chunks, chunk)
			lines, size = nil, 0
			if tail := getLastNChars(chunk, overlap); tail != "" {
				lines = append(lines, tail)
				size = utf8.RuneCountInString(tail)
			}
		}
		if size > 0 {
			size++
		}
		lines = append(lines, unit)
		size += n
	}

	if len(lines) > 0 {
		chunks = append(chunks, strings.Join(lines, "\n"))
	}

	return chunks
}

// chunkUnits splits text into non-empty lines no longer than limit runes.
func chunkUnits(text string, limit int) []string {
	if limit <= 0 {
		limit = 1
	}

	var units []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) <= limit {
			units = append(units, line)
			continue
		}
		for _, sentence := range splitIntoSentences(line) {
			units = append(units, hardSplit(sentence, limit)...)
		}
	}
	return units
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func hardSplit(text string, limit int) []string {
	runes := []rune(text)
	var parts []string
	for len(runes) > limit {
		parts = append(parts, string(runes[:limit]))
		runes = runes[limit:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

func getLastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
