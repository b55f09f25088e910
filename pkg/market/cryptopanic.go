package market

import (
	"context"
	"net/url"

	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/samber/lo"
)

const (
	CryptoPanicURL = "https://cryptopanic.com/api/v1"

	// DefaultNewsLimit caps the number of headlines returned.
	DefaultNewsLimit = 5
)

// CryptoPanic reads public news headlines.
type CryptoPanic struct {
	options
	key string
}

func NewCryptoPanic(key string, opts ...Option) *CryptoPanic {
	return &CryptoPanic{options: newOptions(CryptoPanicURL, opts), key: key}
}

type post struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source struct {
		Title string `json:"title"`
	} `json:"source"`
	PublishedAt string `json:"published_at"`
}

// News returns at most limit headlines, newest first as delivered by the
// API. A non-nil error means the fetch failed (*StatusError for non-2xx);
// an empty slice with a nil error means the API had no news.
func (c *CryptoPanic) News(ctx context.Context, limit int) ([]core.NewsItem, error) {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}

	query := url.Values{}
	query.Set("auth_token", c.key)
	query.Set("public", "true")
	query.Set("kind", "news")
	endpoint := c.baseURL + "/posts/?" + query.Encode()

	var body struct {
		Results []post `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		c.log.WithError(err).Error("news fetch failed")
		return nil, err
	}

	results := body.Results
	if len(results) > limit {
		results = results[:limit]
	}

	return lo.Map(results, func(p post, _ int) core.NewsItem {
		title := p.Title
		if title == "" {
			title = "No title"
		}
		return core.NewsItem{
			Title:       title,
			URL:         p.URL,
			Source:      p.Source.Title,
			PublishedAt: p.PublishedAt,
		}
	}), nil
}
