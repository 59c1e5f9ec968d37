package markdown

import (
	"testing"
	"time"
)

func TestParseFrontMatterListAuthors(t *testing.T) {
	source := []byte(`---
title: Merge Sort in Kotlin
authors:
  - sara-ahmed
  - lee-park
categories:
  - algorithms
date: 2024-03-11T09:30:00Z
description: Sorting with guarantees.
url: merge sort in kotlin
---

Body text.
`)

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta.Title != "Merge Sort in Kotlin" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if len(meta.Authors) != 2 || meta.Authors[0] != "sara-ahmed" {
		t.Fatalf("unexpected authors %#v", meta.Authors)
	}
	want := time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC)
	if !meta.Date.Equal(want) {
		t.Fatalf("unexpected date %s", meta.Date)
	}
	if meta.Excerpt != "Sorting with guarantees." {
		t.Fatalf("expected description to back-fill excerpt, got %q", meta.Excerpt)
	}
	if meta.URL != "merge sort in kotlin" {
		t.Fatalf("unexpected url %q", meta.URL)
	}
	if string(body) != "\nBody text.\n" {
		t.Fatalf("unexpected body %q", string(body))
	}
}

func TestParseFrontMatterScalarAuthor(t *testing.T) {
	source := []byte(`---
title: Quick Sort in Java
authors: mkyong
categories: java
date: 2014-06-02 10:30:00
modified: 2016-11-08
excerpt: In-place quick sort.
url: quick sort in java
---

Body.
`)

	meta, _, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if len(meta.Authors) != 1 || meta.Authors[0] != "mkyong" {
		t.Fatalf("expected scalar author promoted to list, got %#v", meta.Authors)
	}
	if len(meta.Categories) != 1 || meta.Categories[0] != "java" {
		t.Fatalf("expected scalar category promoted to list, got %#v", meta.Categories)
	}
	if meta.Date.Year() != 2014 || meta.Date.Hour() != 10 {
		t.Fatalf("unexpected date %s", meta.Date)
	}
	if meta.Modified.Year() != 2016 || meta.Modified.Month() != time.November {
		t.Fatalf("unexpected modified %s", meta.Modified)
	}
	if meta.Excerpt != "In-place quick sort." {
		t.Fatalf("unexpected excerpt %q", meta.Excerpt)
	}
}

func TestParseFrontMatterPreservesUnknownKeys(t *testing.T) {
	source := []byte(`---
title: Example
url: example
layout: post
featured: true
---

Body.
`)

	meta, _, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta.Custom["layout"] != "post" {
		t.Fatalf("expected layout preserved in custom, got %#v", meta.Custom)
	}
	if meta.Raw["featured"] != true {
		t.Fatalf("expected featured preserved in raw, got %#v", meta.Raw)
	}
	if meta.Raw["title"] != "Example" {
		t.Fatalf("expected title mirrored into raw, got %#v", meta.Raw)
	}
}

func TestParseDateLayouts(t *testing.T) {
	cases := []struct {
		value string
		year  int
	}{
		{"2024-03-11T09:30:00Z", 2024},
		{"2016-08-07T22:15:00", 2016},
		{"2014-06-02 10:30:00", 2014},
		{"2012-01-09", 2012},
		{"not a date", 1},
		{"", 1},
	}

	for _, tc := range cases {
		got := parseDate(tc.value)
		if tc.year == 1 {
			if !got.IsZero() {
				t.Fatalf("expected zero time for %q, got %s", tc.value, got)
			}
			continue
		}
		if got.Year() != tc.year {
			t.Fatalf("parseDate(%q) = %s, want year %d", tc.value, got, tc.year)
		}
	}
}

func TestBuildDocumentScansFences(t *testing.T) {
	source := []byte(`---
title: Fences
url: fences
---

` + "```go\nfunc main() {}\n```\n")

	doc, err := BuildDocument("content/blog/2024/2024-01-01-fences.md", source, time.Now())
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if !doc.Path.Conforms {
		t.Fatalf("expected conforming path, got %#v", doc.Path)
	}
	if doc.Path.Slug != "fences" || doc.Path.Year != 2024 {
		t.Fatalf("unexpected path info %#v", doc.Path)
	}
	if len(doc.CodeFences) != 1 || doc.CodeFences[0].Lang != "go" {
		t.Fatalf("unexpected fences %#v", doc.CodeFences)
	}
	if len(doc.BodyHTML) != 0 {
		t.Fatalf("expected lazy rendering, got %q", doc.BodyHTML)
	}
}
