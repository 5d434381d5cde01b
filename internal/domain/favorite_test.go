package domain

import "testing"

func TestFavoriteSetToggle(t *testing.T) {
	start := FavoriteSet{7}

	added := start.Toggle(42)
	if len(added) != 2 || added[0] != 7 || added[1] != 42 {
		t.Fatalf("expected [7 42], got %v", added)
	}
	if len(start) != 1 {
		t.Fatalf("toggle must not mutate receiver, got %v", start)
	}

	restored := added.Toggle(42)
	if len(restored) != 1 || restored[0] != 7 {
		t.Fatalf("expected [7], got %v", restored)
	}
}

func TestFavoriteSetToggleIsItsOwnInverse(t *testing.T) {
	sets := []FavoriteSet{nil, {1}, {3, 1, 2}, {5, 9}}
	for _, set := range sets {
		for _, id := range []int64{1, 2, 9, 100} {
			got := set.Toggle(id).Toggle(id)
			if len(got) != len(set) {
				t.Fatalf("toggle(%d) twice on %v gave %v", id, set, got)
			}
			for _, member := range set {
				if !got.Contains(member) {
					t.Fatalf("toggle(%d) twice on %v lost %d: %v", id, set, member, got)
				}
			}
			if !set.Contains(id) {
				for i := range set {
					if got[i] != set[i] {
						t.Fatalf("toggle(%d) twice on %v reordered to %v", id, set, got)
					}
				}
			}
		}
	}
}

func TestEventDisplayDate(t *testing.T) {
	cases := map[string]string{
		"2024-03-05":           "3/5/2024",
		"2024-12-31T00:00:00Z": "12/31/2024",
		"2024-07-04T18:00:00":  "7/4/2024",
		"soon":                 "soon",
	}
	for raw, want := range cases {
		if got := (Event{EventDate: raw}).DisplayDate(); got != want {
			t.Fatalf("DisplayDate(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestEventFormDate(t *testing.T) {
	if got := (Event{EventDate: "2024-12-31T00:00:00Z"}).FormDate(); got != "2024-12-31" {
		t.Fatalf("FormDate = %q, want 2024-12-31", got)
	}
	if got := (Event{EventDate: "next week"}).FormDate(); got != "next week" {
		t.Fatalf("FormDate = %q, want raw value", got)
	}
}

func TestCategoryLabelsFallback(t *testing.T) {
	labels := NewCategoryLabels([]Category{{CategoryID: 1, Category: "Cafe"}})
	if got := labels.Label(1); got != "Cafe" {
		t.Fatalf("expected Cafe, got %q", got)
	}
	if got := labels.Label(99); got != UnknownCategory {
		t.Fatalf("expected %q, got %q", UnknownCategory, got)
	}
}

func TestParseAtmosphere(t *testing.T) {
	got, err := ParseAtmosphere(" nature ")
	if err != nil || got != AtmosphereNature {
		t.Fatalf("expected Nature, got %q (%v)", got, err)
	}
	if _, err := ParseAtmosphere("Loud"); err == nil {
		t.Fatal("expected error for unknown atmosphere")
	}
}
