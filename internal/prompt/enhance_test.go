package prompt

import (
	"strings"
	"testing"
)

func TestValidateBounds(t *testing.T) {
	if err := Validate("short"); err != ErrTooShort {
		t.Errorf("short prompt: got %v, want ErrTooShort", err)
	}
	if err := Validate(strings.Repeat("a", 1001)); err != ErrTooLong {
		t.Errorf("long prompt: got %v, want ErrTooLong", err)
	}
	if err := Validate("a valid prompt"); err != nil {
		t.Errorf("valid prompt: got %v, want nil", err)
	}

	// Boundary values are inclusive.
	if err := Validate(strings.Repeat("a", 10)); err != nil {
		t.Errorf("10 chars: got %v, want nil", err)
	}
	if err := Validate(strings.Repeat("a", 1000)); err != nil {
		t.Errorf("1000 chars: got %v, want nil", err)
	}
}

func TestEnhanceSimplePassthrough(t *testing.T) {
	in := "a simple headline"
	out := Enhance(in, Analysis{Blocks: []string{"heading"}, Complexity: Simple})
	if out != in {
		t.Errorf("simple prompt modified: got %q", out)
	}
}

func TestEnhanceVariationTagDeterministic(t *testing.T) {
	a := Analysis{Blocks: []string{"heading"}, Complexity: Moderate}
	first := Enhance("a page with a heading", a)
	second := Enhance("a page with a heading", a)
	if first != second {
		t.Errorf("same input produced different output:\n%q\n%q", first, second)
	}
	if !strings.Contains(first, "(variation ") {
		t.Errorf("variation tag missing: %q", first)
	}

	other := Enhance("a page with a different heading", a)
	if other == first {
		t.Error("different prompts produced identical variation output")
	}
}

func TestEnhanceComplexStructureHint(t *testing.T) {
	a := Analysis{
		Blocks:     []string{"cover", "heading", "columns", "list"},
		Complexity: Complex,
	}
	out := Enhance("a full landing page", a)
	if !strings.Contains(out, "Structure: cover -> heading -> columns") {
		t.Errorf("structure hint wrong or missing: %q", out)
	}
	if strings.Contains(out, "list") {
		t.Errorf("structure hint should stop at three blocks: %q", out)
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		// 2 words, 11 chars: floor(2*1.3 + 11*0.04) = floor(3.04) = 3
		{"hello world", 3},
		// 5 words, 29 chars: floor(6.5 + 1.16) = 7
		{"one two three four fivesixsev", 7},
	}
	for _, tc := range tests {
		if got := EstimateTokens(tc.text); got != tc.want {
			t.Errorf("EstimateTokens(%q): got %d, want %d", tc.text, got, tc.want)
		}
	}
}
