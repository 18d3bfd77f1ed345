package content

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFallbackIsDeterministic(t *testing.T) {
	for _, ct := range Types {
		t.Run(string(ct), func(t *testing.T) {
			first, err := Fallback(ct)
			if err != nil {
				t.Fatalf("Fallback(%s) returned error: %v", ct, err)
			}
			second, err := Fallback(ct)
			if err != nil {
				t.Fatalf("Fallback(%s) returned error: %v", ct, err)
			}

			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("Fallback records differ (-first +second):\n%s", diff)
			}
			if first.ContentType() != ct {
				t.Errorf("Expected content type %s, got %s", ct, first.ContentType())
			}
			if first.RecordSlug() == "" || first.RecordID() == "" {
				t.Errorf("Expected fallback to carry an id and slug, got %q/%q", first.RecordID(), first.RecordSlug())
			}
		})
	}
}

func TestFallbackReturnsIndependentValues(t *testing.T) {
	first, _ := Fallback(TypeTool)
	tool := first.(Tool)
	tool.Images[0] = "/mutated.jpg"
	tool.Specifications["material"] = "plastic"

	second, _ := Fallback(TypeTool)
	fresh := second.(Tool)
	if fresh.Images[0] != PlaceholderImageURL {
		t.Errorf("Expected untouched images, got %v", fresh.Images)
	}
	if fresh.Specifications["material"] != "Stainless steel" {
		t.Errorf("Expected untouched specifications, got %v", fresh.Specifications)
	}
}

func TestFallbackUnknownType(t *testing.T) {
	if _, err := Fallback(Type("plant")); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
}
