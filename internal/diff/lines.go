package diff

import "strings"

// SplitLines splits text into lines, keeping each line's terminator. The last
// line has no terminator if text does not end in one. Concatenating the result
// reproduces text exactly; empty text yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return lines
}

// hasTerminator reports whether line ends with a line terminator.
func hasTerminator(line string) bool {
	return strings.HasSuffix(line, "\n")
}
