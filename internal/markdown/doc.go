// Package markdown implements the article ingestion workflows: front matter
// extraction, filesystem discovery following the corpus path convention,
// fenced code block scanning, HTML rendering, and index import/sync.
package markdown
