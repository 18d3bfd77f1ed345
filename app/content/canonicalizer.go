package content

import (
	"fmt"
	"time"
)

const (
	// NeutralRating is used when a product carries no rating at all.
	NeutralRating   = 3.0
	DefaultReadTime = 5
)

var (
	categoryKeys    = []string{"category", "categoryName", "category_name", "section"}
	tagKeys         = []string{"tags", "tagList", "tag_list", "keywords"}
	slugKeys        = []string{"slug", "slugName", "slug_name", "handle"}
	viewKeys        = []string{"views", "viewCount", "view_count", "views_count"}
	likeKeys        = []string{"likes", "likeCount", "like_count", "likes_count"}
	galleryKeys     = []string{"images", "imageUrls", "image_urls", "gallery"}
	priceKeys       = []string{"price", "cost", "priceUsd", "amount"}
	ratingKeys      = []string{"rating", "averageRating", "avgRating", "stars"}
	reviewCountKeys = []string{"reviewCount", "review_count", "numReviews", "reviews"}
	createdKeys     = []string{"createdAt", "created_at", "updatedAt", "updated_at", "date"}
	productImgKeys  = []string{"imageUrl", "image_url", "image", "mainImage", "thumbnail", "images"}
	productNameKeys = []string{"name", "title", "productName", "product_name"}
	brandKeys       = []string{"brand", "brandName", "brand_name", "manufacturer", "maker"}
)

var articleSchema = schema[Article]{
	value[Article]("id", []string{"id", "_id", "articleId", "article_id", "uuid"}, asString, fixed(""),
		func(a *Article, v string) { a.ID = v }),
	value[Article]("title", []string{"title", "name", "headline"}, asString, fixed("Untitled"),
		func(a *Article, v string) { a.Title = v }),
	slugValue[Article](slugKeys, []string{"title", "name", "headline"},
		func(a *Article, v string) { a.Slug = v }),
	value[Article]("excerpt", []string{"excerpt", "summary", "description", "subtitle"}, asString, fixed(""),
		func(a *Article, v string) { a.Excerpt = v }),
	value[Article]("content", []string{"content", "body", "html", "text"}, asString, fixed(""),
		func(a *Article, v string) { a.Content = v }),
	value[Article]("author", []string{"author", "authorName", "author_name", "createdBy", "created_by"}, asName, fixed("Anonymous"),
		func(a *Article, v string) { a.Author = v }),
	value[Article]("category", categoryKeys, asName, fixed("General"),
		func(a *Article, v string) { a.Category = v }),
	value[Article]("publishedAt", []string{"publishedAt", "published_at", "createdAt", "created_at", "date", "pubDate"}, asTime, resolutionTime,
		func(a *Article, v time.Time) { a.PublishedAt = v }),
	value[Article]("imageUrl", []string{"imageUrl", "image_url", "image", "featuredImage", "featured_image", "coverImage", "cover_image", "thumbnail", "images"}, asImageURL, fixed(PlaceholderImageURL),
		func(a *Article, v string) { a.ImageURL = v }),
	value[Article]("views", viewKeys, asInt, fixed(0),
		func(a *Article, v int) { a.Views = v }),
	value[Article]("likes", likeKeys, asInt, fixed(0),
		func(a *Article, v int) { a.Likes = v }),
	value[Article]("readTime", []string{"readTime", "read_time", "readingTime", "reading_time"}, asInt, fixed(DefaultReadTime),
		func(a *Article, v int) { a.ReadTime = v }),
	value[Article]("featured", []string{"featured", "isFeatured", "is_featured"}, asBool, fixed(false),
		func(a *Article, v bool) { a.Featured = v }),
	value[Article]("tags", tagKeys, asStringList, noStrings,
		func(a *Article, v []string) { a.Tags = v }),
}

var videoSchema = schema[Video]{
	value[Video]("id", []string{"id", "_id", "videoId", "video_id", "uuid"}, asString, fixed(""),
		func(r *Video, v string) { r.ID = v }),
	value[Video]("title", []string{"title", "name", "headline"}, asString, fixed("Untitled"),
		func(r *Video, v string) { r.Title = v }),
	slugValue[Video](slugKeys, []string{"title", "name", "headline"},
		func(r *Video, v string) { r.Slug = v }),
	value[Video]("description", []string{"description", "summary", "excerpt", "content"}, asString, fixed(""),
		func(r *Video, v string) { r.Description = v }),
	value[Video]("author", []string{"author", "channel", "channelName", "channel_name", "creator", "createdBy"}, asName, fixed("Anonymous"),
		func(r *Video, v string) { r.Author = v }),
	value[Video]("category", categoryKeys, asName, fixed("General"),
		func(r *Video, v string) { r.Category = v }),
	value[Video]("publishedAt", []string{"publishedAt", "published_at", "uploadedAt", "uploaded_at", "createdAt", "created_at", "date"}, asTime, resolutionTime,
		func(r *Video, v time.Time) { r.PublishedAt = v }),
	value[Video]("thumbnailUrl", []string{"thumbnailUrl", "thumbnail_url", "thumbnail", "imageUrl", "image_url", "image", "images"}, asImageURL, fixed(PlaceholderImageURL),
		func(r *Video, v string) { r.ThumbnailURL = v }),
	value[Video]("videoUrl", []string{"videoUrl", "video_url", "url", "src", "link"}, asString, fixed(""),
		func(r *Video, v string) { r.VideoURL = v }),
	value[Video]("embedUrl", []string{"embedUrl", "embed_url", "embed"}, asString, fixed(""),
		func(r *Video, v string) { r.EmbedURL = v }),
	value[Video]("duration", []string{"duration", "length", "durationSeconds", "duration_seconds"}, asDurationText, fixed("0:00"),
		func(r *Video, v string) { r.Duration = v }),
	value[Video]("views", viewKeys, asInt, fixed(0),
		func(r *Video, v int) { r.Views = v }),
	value[Video]("likes", likeKeys, asInt, fixed(0),
		func(r *Video, v int) { r.Likes = v }),
	value[Video]("tags", tagKeys, asStringList, noStrings,
		func(r *Video, v []string) { r.Tags = v }),
}

var toolSchema = schema[Tool]{
	value[Tool]("id", []string{"id", "_id", "toolId", "tool_id", "sku"}, asString, fixed(""),
		func(r *Tool, v string) { r.ID = v }),
	value[Tool]("name", productNameKeys, asString, fixed("Unnamed tool"),
		func(r *Tool, v string) { r.Name = v }),
	slugValue[Tool](slugKeys, productNameKeys,
		func(r *Tool, v string) { r.Slug = v }),
	value[Tool]("description", []string{"description", "summary", "content", "details"}, asString, fixed(""),
		func(r *Tool, v string) { r.Description = v }),
	value[Tool]("brand", brandKeys, asName, fixed("Unknown"),
		func(r *Tool, v string) { r.Brand = v }),
	value[Tool]("category", categoryKeys, asName, fixed("General"),
		func(r *Tool, v string) { r.Category = v }),
	value[Tool]("createdAt", createdKeys, asTime, resolutionTime,
		func(r *Tool, v time.Time) { r.CreatedAt = v }),
	value[Tool]("imageUrl", productImgKeys, asImageURL, fixed(PlaceholderImageURL),
		func(r *Tool, v string) { r.ImageURL = v }),
	value[Tool]("images", galleryKeys, asImages, noStrings,
		func(r *Tool, v []string) { r.Images = v }),
	value[Tool]("price", priceKeys, asFloat, fixed(0.0),
		func(r *Tool, v float64) { r.Price = v }),
	value[Tool]("rating", ratingKeys, asFloat, fixed(NeutralRating),
		func(r *Tool, v float64) { r.Rating = v }),
	value[Tool]("reviewCount", reviewCountKeys, asCount, fixed(0),
		func(r *Tool, v int) { r.ReviewCount = v }),
	value[Tool]("inStock", []string{"inStock", "in_stock", "available", "isAvailable"}, asBool, fixed(true),
		func(r *Tool, v bool) { r.InStock = v }),
	value[Tool]("specifications", []string{"specifications", "specs", "attributes", "features"}, asStringMap, noSpecs,
		func(r *Tool, v map[string]string) { r.Specifications = v }),
	value[Tool]("tags", tagKeys, asTagRefs, noTagRefs,
		func(r *Tool, v []TagRef) { r.Tags = v }),
}

var potSchema = schema[Pot]{
	value[Pot]("id", []string{"id", "_id", "potId", "pot_id", "sku"}, asString, fixed(""),
		func(r *Pot, v string) { r.ID = v }),
	value[Pot]("name", productNameKeys, asString, fixed("Unnamed pot"),
		func(r *Pot, v string) { r.Name = v }),
	slugValue[Pot](slugKeys, productNameKeys,
		func(r *Pot, v string) { r.Slug = v }),
	value[Pot]("description", []string{"description", "summary", "content", "details"}, asString, fixed(""),
		func(r *Pot, v string) { r.Description = v }),
	value[Pot]("brand", brandKeys, asName, fixed("Unknown"),
		func(r *Pot, v string) { r.Brand = v }),
	value[Pot]("material", []string{"material", "materials", "madeOf", "made_of"}, asName, fixed("Unknown"),
		func(r *Pot, v string) { r.Material = v }),
	value[Pot]("color", []string{"color", "colour", "finish"}, asName, fixed("Natural"),
		func(r *Pot, v string) { r.Color = v }),
	value[Pot]("dimensions", []string{"dimensions", "size", "measurements", "dims"}, asDimensions, defaultDimensions,
		func(r *Pot, v Dimensions) { r.Dimensions = v }),
	value[Pot]("drainageHoles", []string{"drainageHoles", "drainage_holes", "hasDrainage", "has_drainage", "drainage"}, asBool, fixed(false),
		func(r *Pot, v bool) { r.DrainageHoles = v }),
	value[Pot]("createdAt", createdKeys, asTime, resolutionTime,
		func(r *Pot, v time.Time) { r.CreatedAt = v }),
	value[Pot]("imageUrl", productImgKeys, asImageURL, fixed(PlaceholderImageURL),
		func(r *Pot, v string) { r.ImageURL = v }),
	value[Pot]("images", galleryKeys, asImages, noStrings,
		func(r *Pot, v []string) { r.Images = v }),
	value[Pot]("price", priceKeys, asFloat, fixed(0.0),
		func(r *Pot, v float64) { r.Price = v }),
	value[Pot]("rating", ratingKeys, asFloat, fixed(NeutralRating),
		func(r *Pot, v float64) { r.Rating = v }),
	value[Pot]("reviewCount", reviewCountKeys, asCount, fixed(0),
		func(r *Pot, v int) { r.ReviewCount = v }),
	value[Pot]("tags", tagKeys, asTagRefs, noTagRefs,
		func(r *Pot, v []TagRef) { r.Tags = v }),
}

var tagSchema = schema[Tag]{
	value[Tag]("id", []string{"id", "_id", "tagId", "tag_id"}, asString, fixed(""),
		func(r *Tag, v string) { r.ID = v }),
	value[Tag]("name", []string{"name", "title", "label"}, asString, fixed("Untitled tag"),
		func(r *Tag, v string) { r.Name = v }),
	slugValue[Tag](slugKeys, []string{"name", "title", "label"},
		func(r *Tag, v string) { r.Slug = v }),
	value[Tag]("description", []string{"description", "summary"}, asOptionalString, noDescription,
		func(r *Tag, v *string) { r.Description = v }),
	value[Tag]("usageCount", []string{"usageCount", "usage_count", "count", "articleCount", "article_count", "postsCount"}, asCount, fixed(0),
		func(r *Tag, v int) { r.UsageCount = v }),
	value[Tag]("createdAt", createdKeys, asTime, resolutionTime,
		func(r *Tag, v time.Time) { r.CreatedAt = v }),
}

var canonicalizers = map[Type]func(RawRecord, time.Time) Record{
	TypeArticle: func(raw RawRecord, now time.Time) Record { return articleSchema.canonicalize(raw, now) },
	TypeVideo:   func(raw RawRecord, now time.Time) Record { return videoSchema.canonicalize(raw, now) },
	TypeTool:    func(raw RawRecord, now time.Time) Record { return toolSchema.canonicalize(raw, now) },
	TypePot:     func(raw RawRecord, now time.Time) Record { return potSchema.canonicalize(raw, now) },
	TypeTag:     func(raw RawRecord, now time.Time) Record { return tagSchema.canonicalize(raw, now) },
}

// Canonicalize maps a raw record onto the canonical shape of t. Missing or
// unusable fields take their defaults and timestamps default to now, so
// every supported type always yields a complete record. The only error is an
// unsupported type.
func Canonicalize(t Type, raw RawRecord, now time.Time) (Record, error) {
	canonicalize, ok := canonicalizers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if raw == nil {
		raw = RawRecord{}
	}
	return canonicalize(raw, now.UTC()), nil
}
