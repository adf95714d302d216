package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Fixed YouTube branding for queue entries.
const (
	youtubeIcon  = "fab fa-youtube"
	youtubeColor = "#FF0000"
)

type youtubeListResponse struct {
	Items []struct {
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

func (r *HTTPResolver) resolveYouTube(ctx context.Context, id string) (Meta, error) {
	params := url.Values{
		"id":     {id},
		"key":    {r.youtubeKey},
		"part":   {"snippet,contentDetails"},
		"fields": {"items(snippet(title),contentDetails(duration))"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.youtubeBase+"/videos?"+params.Encode(), nil)
	if err != nil {
		return Meta{}, fmt.Errorf("failed to create youtube request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Meta{}, fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Meta{}, fmt.Errorf("youtube returned status: %d", resp.StatusCode)
	}

	var list youtubeListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return Meta{}, fmt.Errorf("failed to decode youtube response: %w", err)
	}
	if len(list.Items) == 0 {
		return Meta{}, fmt.Errorf("youtube video %s: %w", id, ErrNoResult)
	}

	item := list.Items[0]
	return Meta{
		Title:    item.Snippet.Title,
		Duration: FormatISO8601(item.ContentDetails.Duration),
		Icon:     youtubeIcon,
		Color:    youtubeColor,
	}, nil
}
