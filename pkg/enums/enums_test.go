package enums

import "testing"

func TestNormalizeCategories(t *testing.T) {
	got, err := NormalizeCategories(nil)
	if err != nil {
		t.Fatalf("NormalizeCategories(nil): %v", err)
	}
	if len(got) != 1 || got[0] != CategoryNone {
		t.Fatalf("expected fallback to %q, got %v", CategoryNone, got)
	}

	got, err = NormalizeCategories([]string{"Lifestyle & Habits", "Food & Cuisine"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != CategoryLifestyle || got[1] != CategoryFood {
		t.Fatalf("unexpected categories %v", got)
	}

	if _, err := NormalizeCategories([]string{"Astrology"}); err == nil {
		t.Fatal("expected unknown category to fail")
	}
}

func TestParseQuestionType(t *testing.T) {
	for _, valid := range []string{"text", "number", "boolean", "multiple-choice", "slider"} {
		if _, err := ParseQuestionType(valid); err != nil {
			t.Fatalf("ParseQuestionType(%q): %v", valid, err)
		}
	}
	if _, err := ParseQuestionType("emoji"); err == nil {
		t.Fatal("expected unknown type to fail")
	}
}
