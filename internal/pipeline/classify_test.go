package pipeline

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"1. Water daily", ListItem},
		{"12. Repot in spring", ListItem},
		{"-dash without space", ListItem},
		{"Important Information:", Heading},
		{"Important Information: keep away from pets", Heading},
		{"Other Information: native to Mexico", Heading},
		{"  Important Information:", Paragraph},
		{"1 Water daily", Paragraph},
		{"Name: Aloe vera", Paragraph},
		{"", Blank},
		{"   \t", Blank},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifyLines(t *testing.T) {
	lines := ClassifyLines("Important Information:\n1. Water daily\nLoves sun\n")
	want := []RenderLine{
		{Text: "Important Information:", Kind: Heading},
		{Text: "1. Water daily", Kind: ListItem},
		{Text: "Loves sun", Kind: Paragraph},
		{Text: "", Kind: Blank},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %+v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %+v, want %+v", i, lines[i], want[i])
		}
	}

	if got := ClassifyLines(""); got != nil {
		t.Errorf("expected no lines for empty text, got %+v", got)
	}
}

func TestLineKindJSON(t *testing.T) {
	body, err := json.Marshal(RenderLine{Text: "1. Water", Kind: ListItem})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"text":"1. Water","kind":"list_item"}` {
		t.Errorf("unexpected JSON %s", body)
	}
	if _, err := json.Marshal(RenderLine{Kind: LineKind(42)}); err == nil {
		t.Error("expected error for unknown kind")
	}
	if LineKind(42).String() != "LineKind(42)" {
		t.Errorf("unexpected String for unknown kind: %s", LineKind(42))
	}
}

func TestLineKindDecodesStoredLines(t *testing.T) {
	var line RenderLine
	if err := json.Unmarshal([]byte(`{"text":"Important Information:","kind":"heading"}`), &line); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if line.Kind != Heading {
		t.Errorf("expected heading, got %s", line.Kind)
	}
	if err := json.Unmarshal([]byte(`{"kind":"banner"}`), &line); err == nil {
		t.Error("expected error for unknown kind name")
	}
}
