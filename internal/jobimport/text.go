package jobimport

import (
	"regexp"
	"strings"
)

var (
	spaceRe = regexp.MustCompile(`\s+`)
	blankRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes posting text while preserving line structure: CRLF
// becomes LF, inline whitespace collapses, bullets and indentation survive,
// and runs of blank lines shrink to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := len(line) - len(trimmed)
	content := spaceRe.ReplaceAllString(trimmed, " ")
	if indent > 0 && isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}
