package catalog

import "testing"

func TestViewDefaults(t *testing.T) {
	t.Parallel()

	v := NewView(0)
	if v.Size() != DefaultPageSize {
		t.Fatalf("Size = %d, want %d for unset config", v.Size(), DefaultPageSize)
	}
	if v.Page() != 1 || v.Search() != "" {
		t.Fatalf("view = page %d search %q, want page 1 empty search", v.Page(), v.Search())
	}
}

func TestViewSearchResetsPage(t *testing.T) {
	t.Parallel()

	v := NewView(5)
	v.SetPage(3)

	if changed := v.SetSearch("king"); !changed {
		t.Fatalf("SetSearch reported no change for new text")
	}
	if v.Page() != 1 {
		t.Fatalf("Page = %d after search change, want 1", v.Page())
	}

	v.SetPage(2)
	if changed := v.SetSearch("king"); changed {
		t.Fatalf("SetSearch reported change for identical text")
	}
	if v.Page() != 2 {
		t.Fatalf("Page = %d after no-op search, want 2", v.Page())
	}
}

func TestViewClamp(t *testing.T) {
	t.Parallel()

	v := NewView(5)
	v.SetPage(9)
	v.Clamp(3)
	if v.Page() != 3 {
		t.Fatalf("Page = %d after clamp to 3 pages, want 3", v.Page())
	}

	v.Clamp(0)
	if v.Page() != 1 {
		t.Fatalf("Page = %d after clamp to empty projection, want 1", v.Page())
	}

	v.SetPage(-4)
	if v.Page() != 1 {
		t.Fatalf("Page = %d after negative SetPage, want 1", v.Page())
	}
}
