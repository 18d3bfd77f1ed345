package content

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeArticle Type = "article"
	TypeVideo   Type = "video"
	TypeTool    Type = "tool"
	TypePot     Type = "pot"
	TypeTag     Type = "tag"
)

// Types lists every supported content type in a stable order.
var Types = []Type{TypeArticle, TypeVideo, TypeTool, TypePot, TypeTag}

// ParseType accepts singular and plural forms ("article", "Articles").
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Types {
		if name == string(t) || name == string(t)+"s" {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

type FallbackPolicy string

const (
	PolicyStrict  FallbackPolicy = "strict"
	PolicyLenient FallbackPolicy = "lenient"
)

func ParsePolicy(s string) (FallbackPolicy, error) {
	switch FallbackPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyStrict:
		return PolicyStrict, nil
	case PolicyLenient:
		return PolicyLenient, nil
	default:
		return "", fmt.Errorf("invalid fallback policy %q", s)
	}
}

// RawRecord is an upstream record before normalization.
type RawRecord map[string]any

type SlugQuery struct {
	Target     string
	SlugField  string
	TitleField string
}

// Declaration is what a content type declares about resolution: which keys
// identify a record and what happens when none matches.
type Declaration struct {
	Policy     FallbackPolicy
	SlugField  string
	TitleField string
}

func DefaultDeclaration(t Type) Declaration {
	d := Declaration{
		Policy:     PolicyStrict,
		SlugField:  "slug",
		TitleField: "title",
	}
	switch t {
	case TypeTool, TypePot:
		d.Policy = PolicyLenient
		d.TitleField = "name"
	case TypeTag:
		d.TitleField = "name"
	}
	return d
}

// PlaceholderImageURL is served for every record without a usable image.
const PlaceholderImageURL = "/images/placeholder.jpg"

// Record is a canonical, fully populated content record.
type Record interface {
	ContentType() Type
	RecordID() string
	RecordSlug() string
}

type Article struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"publishedAt"`
	ImageURL    string    `json:"imageUrl"`
	Views       int       `json:"views"`
	Likes       int       `json:"likes"`
	ReadTime    int       `json:"readTime"`
	Featured    bool      `json:"featured"`
	Tags        []string  `json:"tags"`
}

type Video struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	Category     string    `json:"category"`
	PublishedAt  time.Time `json:"publishedAt"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	VideoURL     string    `json:"videoUrl"`
	EmbedURL     string    `json:"embedUrl"`
	Duration     string    `json:"duration"`
	Views        int       `json:"views"`
	Likes        int       `json:"likes"`
	Tags         []string  `json:"tags"`
}

type Tool struct {
	ID             string            `json:"id"`
	Slug           string            `json:"slug"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Brand          string            `json:"brand"`
	Category       string            `json:"category"`
	CreatedAt      time.Time         `json:"createdAt"`
	ImageURL       string            `json:"imageUrl"`
	Images         []string          `json:"images"`
	Price          float64           `json:"price"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"reviewCount"`
	InStock        bool              `json:"inStock"`
	Specifications map[string]string `json:"specifications"`
	Tags           []TagRef          `json:"tags"`
}

type Pot struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Brand         string     `json:"brand"`
	Material      string     `json:"material"`
	Color         string     `json:"color"`
	Dimensions    Dimensions `json:"dimensions"`
	DrainageHoles bool       `json:"drainageHoles"`
	CreatedAt     time.Time  `json:"createdAt"`
	ImageURL      string     `json:"imageUrl"`
	Images        []string   `json:"images"`
	Price         float64    `json:"price"`
	Rating        float64    `json:"rating"`
	ReviewCount   int        `json:"reviewCount"`
	Tags          []TagRef   `json:"tags"`
}

type Tag struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	UsageCount  int       `json:"usageCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TagRef is the structured tag element used by product records. A missing
// description is nil and serializes as null.
type TagRef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

type Dimensions struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Unit   string  `json:"unit"`
}

func (a Article) ContentType() Type  { return TypeArticle }
func (a Article) RecordID() string   { return a.ID }
func (a Article) RecordSlug() string { return a.Slug }

func (v Video) ContentType() Type  { return TypeVideo }
func (v Video) RecordID() string   { return v.ID }
func (v Video) RecordSlug() string { return v.Slug }

func (t Tool) ContentType() Type  { return TypeTool }
func (t Tool) RecordID() string   { return t.ID }
func (t Tool) RecordSlug() string { return t.Slug }

func (p Pot) ContentType() Type  { return TypePot }
func (p Pot) RecordID() string   { return p.ID }
func (p Pot) RecordSlug() string { return p.Slug }

func (t Tag) ContentType() Type  { return TypeTag }
func (t Tag) RecordID() string   { return t.ID }
func (t Tag) RecordSlug() string { return t.Slug }
