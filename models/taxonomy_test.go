package models

import "testing"

func TestValidGenre(t *testing.T) {
	if !ValidGenre("Gaming") {
		t.Fatalf("expected Gaming to be a valid genre")
	}
	if ValidGenre("Quantum Basket Weaving") {
		t.Fatalf("expected unknown genre to be invalid")
	}
}

func TestValidateGenres(t *testing.T) {
	if err := ValidateGenres(nil); err == nil {
		t.Fatalf("expected error for empty selection")
	}

	if err := ValidateGenres([]string{"Gaming", "Nope"}); err == nil {
		t.Fatalf("expected error for unknown genre in selection")
	}

	if err := ValidateGenres([]string{"Gaming", "Travel & Adventure"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenreTaxonomyIsSelfConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, group := range GenreTaxonomy {
		if group.Category == "" {
			t.Fatalf("taxonomy group with empty category")
		}
		if len(group.Options) == 0 {
			t.Fatalf("taxonomy group %q has no genres", group.Category)
		}
		for _, g := range group.Options {
			if seen[g] {
				t.Fatalf("genre %q appears twice in the taxonomy", g)
			}
			seen[g] = true
			if !ValidGenre(g) {
				t.Fatalf("taxonomy genre %q not accepted by ValidGenre", g)
			}
		}
	}
}
