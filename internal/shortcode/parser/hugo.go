package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

var (
	startTagPattern = regexp.MustCompile(`{{[%<]\s*([^\s/%>]+)([^%>]*)[%>]}}`)
	endTagPattern   = regexp.MustCompile(`{{[%<]\s*/\s*([^\s%>]+)\s*[%>]}}`)
)

// HugoParser parses Hugo-style shortcodes in both delimiter styles,
// {{% name %}} and {{< name >}}. Articles in the corpus use the percent form
// almost exclusively; the angle form is accepted for the handful of legacy
// posts that carry it.
type HugoParser struct {
}

// NewHugoParser creates a parser instance.
func NewHugoParser() *HugoParser {
	return &HugoParser{}
}

// Parse returns the list of parsed shortcodes in the content.
func (p *HugoParser) Parse(content string) ([]interfaces.ParsedShortcode, error) {
	_, shortcodes, err := p.Extract(content)
	return shortcodes, err
}

// Extract replaces shortcodes with placeholders and returns both the
// transformed content and the extracted invocations. A directive with no
// matching end tag is treated as self-closing; an end tag that does not match
// the innermost open directive is an error so the lint layer can surface it.
func (p *HugoParser) Extract(content string) (string, []interfaces.ParsedShortcode, error) {
	type stackEntry struct {
		name       string
		startIndex int
		line       int
		params     map[string]any
	}

	var (
		result     []rune
		shortcodes []interfaces.ParsedShortcode
		stack      []stackEntry
		position   int
	)

	appendString := func(s string) {
		result = append(result, []rune(s)...)
	}
	lineAt := func(offset int) int {
		return 1 + strings.Count(content[:offset], "\n")
	}

	for position < len(content) {
		loc := startTagPattern.FindStringIndex(content[position:])
		endLoc := endTagPattern.FindStringIndex(content[position:])

		if loc == nil && endLoc == nil {
			appendString(content[position:])
			break
		}

		startPos := -1
		if loc != nil {
			startPos = position + loc[0]
		}

		endPos := -1
		if endLoc != nil {
			endPos = position + endLoc[0]
		}

		if startPos >= 0 && (endPos == -1 || startPos < endPos) {
			appendString(content[position:startPos])

			matches := startTagPattern.FindStringSubmatch(content[startPos:])
			if len(matches) < 2 {
				return "", nil, fmt.Errorf("invalid shortcode start tag at position %d", startPos)
			}
			name := matches[1]
			params := parseParams(strings.TrimSpace(matches[2]))

			// Self-closing when no end tag for this name follows.
			remainder := content[startPos+len(matches[0]):]
			endMatcher := regexp.MustCompile(fmt.Sprintf(`{{[%%<]\s*/\s*%s\s*[%%>]}}`, regexp.QuoteMeta(name)))
			if loc := endMatcher.FindStringIndex(remainder); loc == nil {
				placeholder := fmt.Sprintf("<!-- shortcode:%d -->", len(shortcodes))
				appendString(placeholder)
				shortcodes = append(shortcodes, interfaces.ParsedShortcode{
					Name:        name,
					Params:      params,
					Line:        lineAt(startPos),
					SelfClosing: true,
				})
				position = startPos + len(matches[0])
				continue
			}

			stack = append(stack, stackEntry{
				name:       name,
				startIndex: len(result),
				line:       lineAt(startPos),
				params:     params,
			})

			position = startPos + len(matches[0])
			continue
		}

		if endPos >= 0 {
			appendString(content[position:endPos])

			matches := endTagPattern.FindStringSubmatch(content[endPos:])
			if len(matches) < 2 {
				return "", nil, fmt.Errorf("invalid shortcode end tag at position %d", endPos)
			}
			name := matches[1]
			if len(stack) == 0 {
				return "", nil, fmt.Errorf("unexpected closing shortcode %s at line %d", name, lineAt(endPos))
			}

			entry := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if entry.name != name {
				return "", nil, fmt.Errorf("mismatched shortcode end tag %s at line %d, expected %s", name, lineAt(endPos), entry.name)
			}

			inner := string(result[entry.startIndex:])
			result = result[:entry.startIndex]

			placeholder := fmt.Sprintf("<!-- shortcode:%d -->", len(shortcodes))
			appendString(placeholder)

			shortcodes = append(shortcodes, interfaces.ParsedShortcode{
				Name:   name,
				Params: entry.params,
				Inner:  inner,
				Line:   entry.line,
			})

			position = endPos + len(matches[0])
			continue
		}
	}

	if len(stack) > 0 {
		entry := stack[len(stack)-1]
		return "", nil, fmt.Errorf("unterminated shortcode %s at line %d", entry.name, entry.line)
	}

	return string(result), shortcodes, nil
}

// parseParams splits the raw parameter text into named and positional values.
// Positional parameters are keyed param1, param2, and so on, which is how the
// github directive receives its repository path.
func parseParams(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	parts := splitParams(raw)
	params := make(map[string]any, len(parts))
	positional := 0
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && !strings.HasPrefix(part, `"`) {
			key := strings.TrimSpace(kv[0])
			params[key] = strings.Trim(kv[1], `"`)
		} else {
			positional++
			params[fmt.Sprintf("param%d", positional)] = strings.Trim(part, `"`)
		}
	}
	return params
}

// splitParams fields the raw text while keeping quoted values intact, so
// title="Big O Notation" stays a single parameter.
func splitParams(raw string) []string {
	var (
		parts    []string
		current  strings.Builder
		inQuotes bool
	)
	for _, r := range raw {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
