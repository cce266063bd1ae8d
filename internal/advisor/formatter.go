package advisor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	simpleUtteranceMaxRunes = 12
	maxBulletSentences      = 4
)

var (
	headingRegex    = regexp.MustCompile(`^\s{0,3}#{1,6}\s*`)
	boldRegex       = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
	codeSpanRegex   = regexp.MustCompile("`+([^`]*)`+")
	italicRegex     = regexp.MustCompile(`(^|[^*\w])\*([^*\s][^*]*?)\*([^*\w]|$)`)
	listMarkerRegex = regexp.MustCompile(`(?m)^\s*([-*•]|\d+[.)])\s+`)
	blankRunRegex   = regexp.MustCompile(`\n{3,}`)
	spaceRunRegex   = regexp.MustCompile(`[ \t]+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)

	simpleUtteranceRegex = regexp.MustCompile(`(?i)^\s*(hi+|hello|hey|hiya|yo|thanks|thank you|thanks a lot|thx|ok|okay|k|cool|great|nice|got it|alright|sure|bye|goodbye|good (morning|afternoon|evening|night))\s*[!.?]*\s*$`)
)

var sentenceAbbreviations = []string{"rs.", "e.g.", "i.e.", "vs.", "mr.", "ms.", "dr."}

// FormatReply normalizes a model reply into a consistent structure. Replies to
// greetings collapse to one line; replies that already hold a list keep it;
// other replies are rebuilt from their sentences.
func FormatReply(raw, lastUserUtterance string) string {
	text := stripMarkdown(raw)
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if isSimpleUtterance(lastUserUtterance) {
		return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
	}

	if listMarkerRegex.MatchString(text) {
		return normalizeBlocks(text)
	}

	sentences := splitSentences(whitespaceRegex.ReplaceAllString(text, " "))
	switch len(sentences) {
	case 0:
		return ""
	case 1:
		return strings.TrimSpace(text)
	case 2:
		return sentences[0] + "\n\n" + sentences[1]
	}

	var closing string
	rest := sentences[2:]
	if last := rest[len(rest)-1]; strings.HasSuffix(last, "?") {
		closing = last
		rest = rest[:len(rest)-1]
	}

	bullets := rest
	var tail []string
	if len(bullets) > maxBulletSentences {
		bullets, tail = rest[:maxBulletSentences], rest[maxBulletSentences:]
	}

	blocks := []string{sentences[0], sentences[1]}
	if len(bullets) > 0 {
		lines := make([]string, 0, len(bullets))
		for _, s := range bullets {
			lines = append(lines, "- "+s)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	if len(tail) > 0 {
		blocks = append(blocks, strings.Join(tail, " "))
	}
	if closing != "" {
		blocks = append(blocks, closing)
	}
	return strings.Join(blocks, "\n\n")
}

// isSimpleUtterance reports whether s is a short greeting or acknowledgement.
// Short profile answers such as "travel" or "50k" do not count.
func isSimpleUtterance(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > simpleUtteranceMaxRunes*2 {
		return false
	}
	return simpleUtteranceRegex.MatchString(s)
}

func stripMarkdown(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for i, line := range lines {
		line = headingRegex.ReplaceAllString(line, "")
		line = boldRegex.ReplaceAllString(line, "$1$2")
		line = codeSpanRegex.ReplaceAllString(line, "$1")
		line = italicRegex.ReplaceAllString(line, "$1$2$3")
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func normalizeBlocks(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(spaceRunRegex.ReplaceAllString(line, " "), " ")
	}
	out := blankRunRegex.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(out)
}

// splitSentences breaks text on '.', '!' or '?' followed by whitespace or the
// end of input. Common abbreviations do not end a sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		// Swallow runs like "?!" or "...".
		end := i + 1
		for end < len(text) && strings.IndexByte(".!?", text[end]) >= 0 {
			end++
		}
		if end < len(text) && text[end] != ' ' {
			i = end - 1
			continue
		}
		if c == '.' && endsWithAbbreviation(text[start:end]) {
			i = end - 1
			continue
		}
		if s := strings.TrimSpace(text[start:end]); s != "" {
			out = append(out, s)
		}
		start = end
		i = end - 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func endsWithAbbreviation(fragment string) bool {
	lower := strings.ToLower(fragment)
	for _, abbr := range sentenceAbbreviations {
		if !strings.HasSuffix(lower, abbr) {
			continue
		}
		prefix := lower[:len(lower)-len(abbr)]
		if prefix == "" || strings.HasSuffix(prefix, " ") || strings.HasSuffix(prefix, "(") {
			return true
		}
	}
	return false
}
