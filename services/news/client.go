package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wayfare/models"
)

// Provider returns travel-relevant local headlines. An empty slice, not an
// error, is returned when nothing matches.
type Provider interface {
	LocalNews(ctx context.Context, query, locale string) ([]models.NewsItem, error)
}

var newsHTTPClient = &http.Client{Timeout: 5 * time.Second}

// travelTerms filters the raw feed down to travel-relevant items.
var travelTerms = []string{
	"travel", "tourism", "tourist", "airport", "flight", "hotel", "festival",
	"event", "museum", "beach", "transit", "strike", "weather", "closure",
}

// RSSProvider reads local headlines from the Google News RSS feed.
type RSSProvider struct{}

func NewRSSProvider() *RSSProvider {
	return &RSSProvider{}
}

func (p *RSSProvider) LocalNews(ctx context.Context, query, locale string) ([]models.NewsItem, error) {
	if query == "" {
		return []models.NewsItem{}, nil
	}
	if locale == "" {
		locale = "en"
	}

	endpoint := fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=%s",
		url.QueryEscape(query), url.QueryEscape(locale))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := newsHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode)
	}

	var feed struct {
		Channel struct {
			Items []struct {
				Title   string `xml:"title"`
				Link    string `xml:"link"`
				PubDate string `xml:"pubDate"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode news feed: %w", err)
	}

	items := make([]models.NewsItem, 0, 5)
	for _, it := range feed.Channel.Items {
		if len(items) == 5 {
			break
		}
		if !isTravelRelevant(it.Title) {
			continue
		}
		items = append(items, models.NewsItem{
			Title:       it.Title,
			Link:        it.Link,
			PublishedAt: it.PubDate,
		})
	}
	return items, nil
}

func isTravelRelevant(title string) bool {
	lower := strings.ToLower(title)
	for _, term := range travelTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
