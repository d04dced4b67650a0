package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxTokens is the chunk size limit used when callers pass a
// non-positive limit.
const DefaultMaxTokens = 500

var (
	blankLineRe   = regexp.MustCompile(`\n\s*\n`)
	sentenceEndRe = regexp.MustCompile(`([.!?]+)\s+`)
)

// EstimateTokens approximates the token count of s without an external
// tokenizer: ceil(len/4).
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}

// Chunk splits text into ordered segments whose estimated token count stays
// within maxTokens. Paragraphs are kept whole where possible; oversized
// paragraphs fall back to sentence boundaries, then to raw character splits.
// preferParagraphBoundaries=false skips the sentence attempt for oversized
// paragraphs. A text that is entirely whitespace yields no chunks.
func Chunk(text string, maxTokens int, preferParagraphBoundaries bool) []string {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var paragraphs []string
	for _, p := range blankLineRe.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	// Single-line documents still count as one paragraph.
	if len(paragraphs) == 0 {
		paragraphs = []string{text}
	}

	var chunks []string
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(buf.String()))
			buf.Reset()
		}
	}

	for _, para := range paragraphs {
		if EstimateTokens(para) > maxTokens {
			flush()
			chunks = append(chunks, splitOversized(para, maxTokens, preferParagraphBoundaries)...)
			continue
		}
		if buf.Len() == 0 {
			buf.WriteString(para)
			continue
		}
		if EstimateTokens(buf.String()+"\n\n"+para) > maxTokens {
			flush()
			buf.WriteString(para)
			continue
		}
		buf.WriteString("\n\n")
		buf.WriteString(para)
	}
	flush()

	return chunks
}

// splitOversized breaks a paragraph that alone exceeds the token limit.
func splitOversized(para string, maxTokens int, bySentence bool) []string {
	if !bySentence {
		return splitByLength(para, maxTokens)
	}

	sentences := splitSentences(para)
	var out []string
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			out = append(out, strings.TrimSpace(buf.String()))
			buf.Reset()
		}
	}

	for _, s := range sentences {
		if EstimateTokens(s) > maxTokens {
			flush()
			out = append(out, splitByLength(s, maxTokens)...)
			continue
		}
		if buf.Len() == 0 {
			buf.WriteString(s)
			continue
		}
		if EstimateTokens(buf.String()+" "+s) > maxTokens {
			flush()
			buf.WriteString(s)
			continue
		}
		buf.WriteString(" ")
		buf.WriteString(s)
	}
	flush()

	return out
}

// splitSentences cuts text on sentence-terminal punctuation followed by
// whitespace, keeping the punctuation with the sentence.
func splitSentences(text string) []string {
	locs := sentenceEndRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}
	var sentences []string
	start := 0
	for _, loc := range locs {
		// loc[3] is the end of the punctuation group.
		end := loc[3]
		s := strings.TrimSpace(text[start:end])
		if s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// splitByLength cuts text every maxTokens*4 bytes with no boundary
// preference, backing up so a cut never lands inside a multi-byte rune.
func splitByLength(text string, maxTokens int) []string {
	size := maxTokens * 4
	var out []string
	for len(text) > 0 {
		if len(text) <= size {
			if t := strings.TrimSpace(text); t != "" {
				out = append(out, t)
			}
			break
		}
		cut := size
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		piece := strings.TrimSpace(text[:cut])
		if piece != "" {
			out = append(out, piece)
		}
		text = text[cut:]
	}
	return out
}
