package content

import (
	"fmt"
	"time"
)

// fallbackTime is the timestamp of every synthetic record so that repeated
// fallbacks are identical.
var fallbackTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var fallbacks = map[Type]func() Record{
	TypeArticle: func() Record {
		return Article{
			ID:          "fallback-article",
			Slug:        "getting-started-with-gardening",
			Title:       "Getting Started with Gardening",
			Excerpt:     "A short introduction to planning your first garden bed.",
			Content:     "This article is temporarily unavailable. Please check back soon.",
			Author:      "Garden Team",
			Category:    "General",
			PublishedAt: fallbackTime,
			ImageURL:    PlaceholderImageURL,
			ReadTime:    DefaultReadTime,
			Tags:        []string{"gardening"},
		}
	},
	TypeVideo: func() Record {
		return Video{
			ID:           "fallback-video",
			Slug:         "garden-tour",
			Title:        "Garden Tour",
			Description:  "This video is temporarily unavailable.",
			Author:       "Garden Team",
			Category:     "General",
			PublishedAt:  fallbackTime,
			ThumbnailURL: PlaceholderImageURL,
			Duration:     "0:00",
			Tags:         []string{"gardening"},
		}
	},
	TypeTool: func() Record {
		return Tool{
			ID:             "fallback-tool",
			Slug:           "hand-trowel",
			Name:           "Hand Trowel",
			Description:    "A sturdy stainless steel trowel for planting and transplanting.",
			Brand:          "Garden Essentials",
			Category:       "Hand Tools",
			CreatedAt:      fallbackTime,
			ImageURL:       PlaceholderImageURL,
			Images:         []string{PlaceholderImageURL},
			Price:          19.99,
			Rating:         NeutralRating,
			InStock:        true,
			Specifications: map[string]string{"material": "Stainless steel", "length": "30 cm"},
			Tags:           []TagRef{{ID: "hand-tools", Name: "Hand Tools", Slug: "hand-tools"}},
		}
	},
	TypePot: func() Record {
		return Pot{
			ID:            "fallback-pot",
			Slug:          "terracotta-pot",
			Name:          "Terracotta Pot",
			Description:   "A classic unglazed terracotta pot with a drainage hole.",
			Brand:         "Garden Essentials",
			Material:      "Terracotta",
			Color:         "Natural",
			Dimensions:    Dimensions{Height: 20, Width: 22, Depth: 22, Unit: "cm"},
			DrainageHoles: true,
			CreatedAt:     fallbackTime,
			ImageURL:      PlaceholderImageURL,
			Images:        []string{PlaceholderImageURL},
			Price:         14.5,
			Rating:        NeutralRating,
			Tags:          []TagRef{{ID: "containers", Name: "Containers", Slug: "containers"}},
		}
	},
	TypeTag: func() Record {
		return Tag{
			ID:        "fallback-tag",
			Slug:      "gardening",
			Name:      "Gardening",
			CreatedAt: fallbackTime,
		}
	},
}

// Fallback returns the fixed synthetic record of t. Each call builds a new
// value, so callers never share slices or maps.
func Fallback(t Type) (Record, error) {
	build, ok := fallbacks[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return build(), nil
}
