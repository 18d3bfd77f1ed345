package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Source lists every record of one content type. Errors are transport
// failures; the returned envelope may have any shape Unwrap understands.
type Source interface {
	ListRecords(ctx context.Context, t Type) (any, error)
}

type Resolution struct {
	Record Record
	// Fallback is set when a synthetic record replaced a missing one.
	Fallback bool
}

type Service struct {
	source       Source
	declarations map[Type]Declaration
	now          func() time.Time
}

// NewService builds the resolution service. Types missing from declarations
// use DefaultDeclaration.
func NewService(source Source, declarations map[Type]Declaration) *Service {
	decls := make(map[Type]Declaration, len(declarations))
	for t, d := range declarations {
		decls[t] = d
	}
	return &Service{
		source:       source,
		declarations: decls,
		now:          time.Now,
	}
}

func (s *Service) Declaration(t Type) Declaration {
	def := DefaultDeclaration(t)
	d, ok := s.declarations[t]
	if !ok {
		return def
	}
	if d.Policy == "" {
		d.Policy = def.Policy
	}
	if d.SlugField == "" {
		d.SlugField = def.SlugField
	}
	if d.TitleField == "" {
		d.TitleField = def.TitleField
	}
	return d
}

// GetCanonicalRecord fetches the collection of t and returns the canonical
// record for slug. Failures are *ResolutionError.
func (s *Service) GetCanonicalRecord(ctx context.Context, t Type, slug string) (Record, error) {
	res, err := s.Resolve(ctx, t, slug)
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// Resolve is GetCanonicalRecord that also reports whether the record is the
// type's synthetic fallback.
func (s *Service) Resolve(ctx context.Context, t Type, slug string) (Resolution, error) {
	if _, ok := canonicalizers[t]; !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}

	decl := s.Declaration(t)

	envelope, err := s.source.ListRecords(ctx, t)
	if err != nil {
		slog.Warn("Collection fetch failed", "type", t, "slug", slug, "error", err)
		return Resolution{}, &ResolutionError{Kind: KindTransport, Type: t, Slug: slug, Err: err}
	}

	records := Unwrap(envelope)
	raw, found := Resolve(records, SlugQuery{
		Target:     slug,
		SlugField:  decl.SlugField,
		TitleField: decl.TitleField,
	})

	if !found {
		if decl.Policy != PolicyLenient {
			slog.Debug("Record not found", "type", t, "slug", slug, "records", len(records))
			return Resolution{}, &ResolutionError{Kind: KindNotFound, Type: t, Slug: slug}
		}

		rec, err := Fallback(t)
		if err != nil {
			return Resolution{}, err
		}
		slog.Debug("Serving fallback record", "type", t, "slug", slug, "records", len(records))
		return Resolution{Record: rec, Fallback: true}, nil
	}

	rec, err := Canonicalize(t, raw, s.now())
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{Record: rec}, nil
}
