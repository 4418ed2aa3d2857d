package parser

import (
	"strings"
	"testing"
)

func TestTextParser_PassesThrough(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\r\n\r\nThird | with | pipes"
	p := &TextParser{}
	got, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("expected input unchanged, got %q", got)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	got, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestTextParser_StripsBOM(t *testing.T) {
	p := &TextParser{}
	got, err := p.Parse(strings.NewReader("\xEF\xBB\xBFHello world"), "bom.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello world" {
		t.Errorf("expected BOM stripped, got %q", got)
	}
}

func TestTextParser_Windows1252Fallback(t *testing.T) {
	p := &TextParser{}
	got, err := p.Parse(strings.NewReader("caf\xe9 \x93quoted\x94"), "legacy.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "café “quoted”"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkdownParser_SeparatesBlocks(t *testing.T) {
	input := "# Title\nIntro text right after.\n- item one\n- item *two*\n\nPara with **bold**\ncontinued.\n\n---\n\n## Next `section`\n"
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"# Title",
		"Intro text right after.",
		"- item one\n- item *two*",
		"Para with **bold**\ncontinued.",
		"## Next `section`",
	}, "\n\n")
	if got != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, got)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader("just *one* paragraph"), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "just *one* paragraph" {
		t.Errorf("unexpected text %q", got)
	}
}
