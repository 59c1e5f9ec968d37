package markdown

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// ScanCodeFences walks the Markdown body line by line and records every
// fenced code block together with its info string. Both backtick and tilde
// fences are recognised; a closing fence must use the same character and at
// least as many repetitions as its opener, per CommonMark.
func ScanCodeFences(body []byte) []interfaces.CodeFence {
	var (
		fences  []interfaces.CodeFence
		open    *interfaces.CodeFence
		marker  byte
		width   int
		scanner = bufio.NewScanner(bytes.NewReader(body))
		line    int
	)
	// Articles embed long sample outputs; grow the line buffer beyond the
	// bufio default.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line++
		text := scanner.Text()
		trimmed := strings.TrimLeft(text, " ")
		if len(text)-len(trimmed) > 3 {
			// Indented four or more spaces: an indented code block, not a fence.
			continue
		}

		ch, count := fenceMarker(trimmed)
		if count < 3 {
			continue
		}

		if open != nil {
			rest := strings.TrimSpace(trimmed[count:])
			if ch == marker && count >= width && rest == "" {
				open.Closed = true
				fences = append(fences, *open)
				open = nil
			}
			// Anything else inside an open fence is literal content.
			continue
		}

		info := strings.TrimSpace(trimmed[count:])
		// Backtick fences cannot carry backticks in the info string.
		if ch == '`' && strings.ContainsRune(info, '`') {
			continue
		}

		lang := info
		if idx := strings.IndexAny(lang, " \t"); idx >= 0 {
			lang = lang[:idx]
		}

		open = &interfaces.CodeFence{
			Lang: strings.ToLower(lang),
			Line: line,
		}
		marker = ch
		width = count
	}

	if open != nil {
		fences = append(fences, *open)
	}

	return fences
}

func fenceMarker(line string) (byte, int) {
	if line == "" {
		return 0, 0
	}
	ch := line[0]
	if ch != '`' && ch != '~' {
		return 0, 0
	}
	count := 0
	for count < len(line) && line[count] == ch {
		count++
	}
	return ch, count
}
