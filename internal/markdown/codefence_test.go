package markdown

import "testing"

func TestScanCodeFences(t *testing.T) {
	body := []byte("intro\n\n```go\nfunc main() {}\n```\n\n~~~~python\nprint(1)\n~~~~\n\n```\nplain\n```\n")

	fences := ScanCodeFences(body)
	if len(fences) != 3 {
		t.Fatalf("expected 3 fences, got %#v", fences)
	}

	if fences[0].Lang != "go" || fences[0].Line != 3 || !fences[0].Closed {
		t.Fatalf("unexpected first fence %#v", fences[0])
	}
	if fences[1].Lang != "python" || !fences[1].Closed {
		t.Fatalf("unexpected second fence %#v", fences[1])
	}
	if fences[2].Lang != "" {
		t.Fatalf("expected bare fence to have empty lang, got %#v", fences[2])
	}
}

func TestScanCodeFencesUnclosed(t *testing.T) {
	body := []byte("text\n\n```kotlin\nval x = 1\n")

	fences := ScanCodeFences(body)
	if len(fences) != 1 {
		t.Fatalf("expected 1 fence, got %#v", fences)
	}
	if fences[0].Closed {
		t.Fatalf("expected fence to be reported unclosed")
	}
	if fences[0].Lang != "kotlin" {
		t.Fatalf("unexpected lang %q", fences[0].Lang)
	}
}

func TestScanCodeFencesInfoStringRules(t *testing.T) {
	// Backtick info strings cannot contain backticks, so the line is prose.
	body := []byte("``` has ` tick\n")
	if fences := ScanCodeFences(body); len(fences) != 0 {
		t.Fatalf("expected no fences, got %#v", fences)
	}

	// A shorter closing run does not close the fence.
	body = []byte("````go\ncode\n```\n````\n")
	fences := ScanCodeFences(body)
	if len(fences) != 1 || !fences[0].Closed {
		t.Fatalf("expected single closed fence, got %#v", fences)
	}

	// Indented four spaces is a code block, not a fence.
	body = []byte("    ```go\n")
	if fences := ScanCodeFences(body); len(fences) != 0 {
		t.Fatalf("expected indented fence to be ignored, got %#v", fences)
	}

	// Language tags are lower-cased.
	body = []byte("```Java\nint x;\n```\n")
	fences = ScanCodeFences(body)
	if len(fences) != 1 || fences[0].Lang != "java" {
		t.Fatalf("expected lower-cased lang, got %#v", fences)
	}
}
