package resolver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/watchalong/server/internal/config"
	"github.com/watchalong/server/internal/domain"
)

// Meta carries the normalized enrichment fields a provider lookup yields.
type Meta struct {
	Title    string
	Duration string
	Icon     string
	Color    string
}

// Resolver fetches metadata for a parsed video reference.
type Resolver interface {
	Resolve(ctx context.Context, ref domain.VideoReference) (Meta, error)
}

// ErrNoResult means the provider answered but had no item for the id.
var ErrNoResult = errors.New("provider returned no result")

// HTTPResolver queries the YouTube Data and Twitch Helix APIs. Base URLs
// are injected so tests can point it at a fake.
type HTTPResolver struct {
	client         *http.Client
	youtubeBase    string
	youtubeKey     string
	twitchBase     string
	twitchClientID string
}

func NewHTTPResolver(cfg config.ProvidersConfig) *HTTPResolver {
	return &HTTPResolver{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		youtubeBase:    cfg.YouTube.BaseURL,
		youtubeKey:     cfg.YouTube.APIKey,
		twitchBase:     cfg.Twitch.BaseURL,
		twitchClientID: cfg.Twitch.ClientID,
	}
}

// Resolve dispatches to the provider matching the reference. An unknown
// provider resolves to empty metadata without error, so the surrounding
// operation still completes.
func (r *HTTPResolver) Resolve(ctx context.Context, ref domain.VideoReference) (Meta, error) {
	switch ref.Provider {
	case domain.ProviderYouTube:
		return r.resolveYouTube(ctx, ref.ID)
	case domain.ProviderTwitch:
		return r.resolveTwitch(ctx, ref)
	default:
		return Meta{}, nil
	}
}
