package sender

import (
	"strings"
	"unicode/utf8"
)

// chunkText splits text into pieces of at most limit bytes, preferring line boundaries.
func chunkText(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if current.Len()+len(line) > limit {
			flush()
		}

		for len(line) > limit {
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}

		current.WriteString(line)
	}
	flush()

	for i := range chunks {
		chunks[i] = strings.TrimSuffix(chunks[i], "\n")
	}

	return chunks
}
