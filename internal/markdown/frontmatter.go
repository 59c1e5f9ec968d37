package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured front matter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily; CodeFences are scanned eagerly since lint rules
// and the index both consume them.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		Path:         ParsePathInfo(path),
		FrontMatter:  meta,
		Body:         body,
		CodeFences:   ScanCodeFences(body),
		LastModified: modified,
	}, nil
}

// frontMatterEnvelope is the YAML decoding target. The corpus spans several
// eras of writing: authors appear both as a scalar and a list, excerpt moved
// to description and back, and dates appear in a handful of layouts. The
// envelope keeps the flexible representations and normalisation happens in
// envelopeToFrontMatter.
type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Authors     stringList     `yaml:"authors"`
	Categories  stringList     `yaml:"categories"`
	Date        string         `yaml:"date"`
	Modified    string         `yaml:"modified"`
	Excerpt     string         `yaml:"excerpt"`
	Description string         `yaml:"description"`
	Image       string         `yaml:"image"`
	URL         string         `yaml:"url"`
	Custom      map[string]any `yaml:",inline"`
}

// stringList accepts both a YAML sequence and a bare scalar, promoting the
// scalar to a one-element list.
type stringList []string

func (l *stringList) UnmarshalYAML(unmarshal func(any) error) error {
	var multi []string
	if err := unmarshal(&multi); err == nil {
		*l = multi
		return nil
	}

	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	if strings.TrimSpace(single) == "" {
		*l = nil
		return nil
	}
	*l = []string{single}
	return nil
}

// dateLayouts covers the formats observed across the corpus, newest first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	excerpt := env.Excerpt
	if strings.TrimSpace(excerpt) == "" {
		excerpt = env.Description
	}

	raw := make(map[string]any, len(env.Custom)+9)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if len(env.Authors) > 0 {
		raw["authors"] = append([]string(nil), env.Authors...)
	}
	if len(env.Categories) > 0 {
		raw["categories"] = append([]string(nil), env.Categories...)
	}
	if env.Date != "" {
		raw["date"] = env.Date
	}
	if env.Modified != "" {
		raw["modified"] = env.Modified
	}
	if env.Excerpt != "" {
		raw["excerpt"] = env.Excerpt
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if env.Image != "" {
		raw["image"] = env.Image
	}
	if env.URL != "" {
		raw["url"] = env.URL
	}

	return interfaces.FrontMatter{
		Title:       env.Title,
		Authors:     append([]string(nil), env.Authors...),
		Categories:  append([]string(nil), env.Categories...),
		Date:        parseDate(env.Date),
		Modified:    parseDate(env.Modified),
		Excerpt:     excerpt,
		Description: env.Description,
		Image:       env.Image,
		URL:         env.URL,
		Custom:      cloneMap(env.Custom),
		Raw:         raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
