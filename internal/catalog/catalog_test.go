package catalog

import "testing"

func fixture() *Catalog {
	return New([]Question{
		{ID: "c1", Chapter: 1, Text: "Pick one", Type: TypeChoice, Options: []string{"Alpha", "Beta", "Gamma"}},
		{ID: "t1", Chapter: 1, Text: "Say anything", Type: TypeTextEntry},
		{ID: "c2", Chapter: 2, Text: "Pick another", Type: TypeChoice, Options: []string{"Yes", "No"}},
	})
}

func TestResolve(t *testing.T) {
	c := fixture()

	q, ok := c.Resolve("c1")
	if !ok {
		t.Fatalf("expected c1 to resolve")
	}
	if q.Text != "Pick one" || len(q.Options) != 3 {
		t.Fatalf("unexpected question: %+v", q)
	}

	if _, ok := c.Resolve("nope"); ok {
		t.Fatalf("expected unknown id to report not found")
	}
}

func TestOptionIndex(t *testing.T) {
	c := fixture()

	if got := c.OptionIndex("c1", "Beta"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if got := c.OptionIndex("c1", "beta"); got != -1 {
		t.Fatalf("match must be case-sensitive, got %d", got)
	}
	if got := c.OptionIndex("c1", "Delta"); got != -1 {
		t.Fatalf("expected -1 for unknown value, got %d", got)
	}
	if got := c.OptionIndex("c1", ""); got != -1 {
		t.Fatalf("expected -1 for empty value, got %d", got)
	}
	if got := c.OptionIndex("t1", "anything"); got != -1 {
		t.Fatalf("expected -1 for optionless question, got %d", got)
	}
	if got := c.OptionIndex("nope", "Alpha"); got != -1 {
		t.Fatalf("expected -1 for unknown question, got %d", got)
	}
}

func TestQuestionsPreservesOrder(t *testing.T) {
	c := fixture()
	qs := c.Questions()
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	if qs[0].ID != "c1" || qs[1].ID != "t1" || qs[2].ID != "c2" {
		t.Fatalf("catalog order not preserved: %+v", qs)
	}
}

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load embedded catalog: %v", err)
	}
	if c.Len() == 0 {
		t.Fatalf("expected non-empty catalog")
	}

	seen := make(map[string]struct{}, c.Len())
	for _, q := range c.Questions() {
		if q.ID == "" {
			t.Fatalf("question without id: %+v", q)
		}
		if _, dup := seen[q.ID]; dup {
			t.Fatalf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}

		if q.Chapter < 1 || q.Chapter > 7 {
			t.Fatalf("question %s has chapter %d outside 1..7", q.ID, q.Chapter)
		}
		switch q.Type {
		case TypeChoice:
			if len(q.Options) < 2 {
				t.Fatalf("choice question %s needs at least 2 options", q.ID)
			}
		case TypeTextEntry:
			if len(q.Options) != 0 {
				t.Fatalf("text entry question %s must not carry options", q.ID)
			}
		default:
			t.Fatalf("question %s has unknown type %q", q.ID, q.Type)
		}
	}

	if _, ok := c.Resolve("q1"); !ok {
		t.Fatalf("expected aesthetic question q1 in catalog")
	}
	if _, ok := c.Resolve("q26"); !ok {
		t.Fatalf("expected toxic trait question q26 in catalog")
	}
}
