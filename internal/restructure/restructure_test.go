package restructure

import (
	"strings"
	"testing"
)

func TestRestructure_PrunesSectionsWithoutTerm(t *testing.T) {
	got := Restructure("Intro | has searchterm here | no match | also searchterm", "searchterm")
	want := "Intro has searchterm here also searchterm"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRestructure_SinglePipeIsPassthrough(t *testing.T) {
	for _, p := range []string{
		"no pipes at all",
		"  one | pipe only  ",
		"",
	} {
		if got := Restructure(p, "pipe"); got != p {
			t.Errorf("expected %q unchanged, got %q", p, got)
		}
	}
}

func TestRestructure_BaseAlwaysKept(t *testing.T) {
	got := Restructure("  Header without it | second | third has TERM  ", "term")
	if !strings.HasPrefix(got, "Header without it") {
		t.Errorf("expected base section first, got %q", got)
	}
	if got != "Header without it third has TERM" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRestructure_NothingButBase(t *testing.T) {
	got := Restructure("base term | a | b", "term")
	if got != "base term" {
		t.Errorf("expected only the base, got %q", got)
	}
}

func TestRestructure_CaseInsensitiveSections(t *testing.T) {
	got := Restructure("x | FOO bar | baz | Foo", "foo")
	if got != "x FOO bar Foo" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRestructureTrace(t *testing.T) {
	_, trace := RestructureTrace("base | keep term | drop", "term")
	if !trace.Triggered {
		t.Fatal("expected restructuring to trigger")
	}
	if len(trace.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(trace.Sections))
	}
	want := []struct {
		kept   bool
		reason string
	}{
		{true, ReasonBase},
		{true, ReasonMatch},
		{false, ReasonNoMatch},
	}
	for i, w := range want {
		s := trace.Sections[i]
		if s.Kept != w.kept || s.Reason != w.reason {
			t.Errorf("section %d: expected kept=%v reason=%q, got kept=%v reason=%q", i, w.kept, w.reason, s.Kept, s.Reason)
		}
	}

	_, trace = RestructureTrace("a | b", "a")
	if trace.Triggered || len(trace.Sections) != 0 {
		t.Errorf("expected empty trace for a single pipe, got %+v", trace)
	}
}

func TestRestructure_NeverAddsDroppedContent(t *testing.T) {
	p := "lead | alpha term | beta | gamma term | delta"
	got := Restructure(p, "term")
	for _, dropped := range []string{"beta", "delta"} {
		if strings.Contains(got, dropped) {
			t.Errorf("output %q contains dropped section %q", got, dropped)
		}
	}
	if strings.Index(got, "alpha") > strings.Index(got, "gamma") {
		t.Errorf("sections reordered: %q", got)
	}
}
