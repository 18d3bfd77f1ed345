package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeSource struct {
	envelope any
	err      error
	calls    int
	lastType Type
}

func (f *fakeSource) ListRecords(ctx context.Context, t Type) (any, error) {
	f.calls++
	f.lastType = t
	return f.envelope, f.err
}

func newTestService(src Source, decls map[Type]Declaration) *Service {
	s := NewService(src, decls)
	s.now = func() time.Time { return testNow }
	return s
}

func TestGetCanonicalRecordEndToEnd(t *testing.T) {
	src := &fakeSource{envelope: map[string]any{
		"success": true,
		"data": []any{
			map[string]any{"id": 7.0, "title": "Pruning Basics", "slug": "pruning-basics", "views": 120.0},
		},
	}}
	svc := newTestService(src, nil)

	rec, err := svc.GetCanonicalRecord(context.Background(), TypeArticle, "pruning-basics")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := Article{
		ID:          "7",
		Slug:        "pruning-basics",
		Title:       "Pruning Basics",
		Author:      "Anonymous",
		Category:    "General",
		PublishedAt: testNow,
		ImageURL:    PlaceholderImageURL,
		Views:       120,
		Likes:       0,
		ReadTime:    DefaultReadTime,
		Tags:        []string{},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("Record mismatch (-want +got):\n%s", diff)
	}
	if src.lastType != TypeArticle {
		t.Errorf("Expected source to be asked for articles, got %s", src.lastType)
	}
}

func TestResolveStrictNotFound(t *testing.T) {
	src := &fakeSource{envelope: []any{map[string]any{"slug": "other"}}}
	svc := newTestService(src, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.GetCanonicalRecord(context.Background(), TypeArticle, "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Call %d: expected ErrNotFound, got %v", i, err)
		}
		if errors.Is(err, ErrTransport) {
			t.Errorf("Call %d: not-found must not look like a transport failure", i)
		}

		var resErr *ResolutionError
		if !errors.As(err, &resErr) {
			t.Fatalf("Call %d: expected *ResolutionError, got %T", i, err)
		}
		if resErr.Kind != KindNotFound || resErr.Type != TypeArticle || resErr.Slug != "missing" {
			t.Errorf("Call %d: unexpected error fields %+v", i, resErr)
		}
	}
}

func TestResolveLenientNotFoundServesFallback(t *testing.T) {
	src := &fakeSource{envelope: []any{map[string]any{"slug": "other"}}}
	svc := newTestService(src, nil)

	expected, _ := Fallback(TypePot)

	for i := 0; i < 3; i++ {
		res, err := svc.Resolve(context.Background(), TypePot, "missing-pot")
		if err != nil {
			t.Fatalf("Call %d: expected no error, got %v", i, err)
		}
		if !res.Fallback {
			t.Errorf("Call %d: expected fallback flag", i)
		}
		if diff := cmp.Diff(expected, res.Record); diff != "" {
			t.Errorf("Call %d: fallback mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestResolveTransportFailureIgnoresPolicy(t *testing.T) {
	cause := errors.New("connection refused")

	for _, ct := range []Type{TypeArticle, TypeTool} {
		t.Run(string(ct), func(t *testing.T) {
			svc := newTestService(&fakeSource{err: cause}, nil)

			res, err := svc.Resolve(context.Background(), ct, "anything")
			if !errors.Is(err, ErrTransport) {
				t.Fatalf("Expected ErrTransport, got %v", err)
			}
			if !errors.Is(err, cause) {
				t.Errorf("Expected the transport cause to be preserved, got %v", err)
			}
			if res.Record != nil {
				t.Errorf("Expected no record, got %v", res.Record)
			}
		})
	}
}

func TestResolveMalformedEnvelopeIsNotFound(t *testing.T) {
	svc := newTestService(&fakeSource{envelope: map[string]any{"error": "boom"}}, nil)

	_, err := svc.Resolve(context.Background(), TypeVideo, "garden-tour")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestResolveUsesDeclarations(t *testing.T) {
	src := &fakeSource{envelope: map[string]any{"data": []any{
		map[string]any{"handle": "spring-planting", "title": "Spring Planting"},
	}}}
	svc := newTestService(src, map[Type]Declaration{
		TypeArticle: {Policy: PolicyLenient, SlugField: "handle"},
	})

	decl := svc.Declaration(TypeArticle)
	if decl.TitleField != "title" {
		t.Errorf("Expected default title field to be filled in, got %q", decl.TitleField)
	}

	res, err := svc.Resolve(context.Background(), TypeArticle, "SPRING-PLANTING")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Fallback || res.Record.RecordSlug() != "spring-planting" {
		t.Errorf("Expected the declared slug field to match, got %+v", res)
	}

	res, err = svc.Resolve(context.Background(), TypeArticle, "winter-pruning")
	if err != nil {
		t.Fatalf("Expected lenient declaration to absorb not found, got %v", err)
	}
	if !res.Fallback {
		t.Error("Expected fallback record")
	}
}

func TestResolveUnknownType(t *testing.T) {
	src := &fakeSource{}
	svc := newTestService(src, nil)

	_, err := svc.Resolve(context.Background(), Type("plants"), "fern")
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
	if src.calls != 0 {
		t.Errorf("Expected no fetch for unknown types, got %d", src.calls)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
		wantErr  bool
	}{
		{"article", TypeArticle, false},
		{"Articles", TypeArticle, false},
		{" pots ", TypePot, false},
		{"tags", TypeTag, false},
		{"plant", "", true},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownType) {
				t.Errorf("ParseType(%q): expected ErrUnknownType, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("ParseType(%q) = %q, %v; expected %q", tt.input, got, err, tt.expected)
		}
	}
}
