package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/watchalong/server/internal/domain"
)

// Fixed Twitch branding for queue entries.
const (
	twitchIcon  = "fab fa-twitch"
	twitchColor = "#6441A4"
)

// helixDuration tolerates both Helix duration encodings: videos report a
// string like "1h2m3s", clips a bare number of seconds.
type helixDuration string

func (d *helixDuration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = helixDuration(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("unsupported duration encoding: %s", b)
	}
	*d = helixDuration(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

type helixListResponse struct {
	Data []struct {
		ID       string        `json:"id"`
		Title    string        `json:"title"`
		Duration helixDuration `json:"duration"`
	} `json:"data"`
}

// resolveTwitch fetches title and duration for a Twitch reference. A
// stream reference is a two-step pipeline: the login in the URL has to be
// resolved to a numeric user id before the live stream can be queried,
// and a failed first step short-circuits the second.
func (r *HTTPResolver) resolveTwitch(ctx context.Context, ref domain.VideoReference) (Meta, error) {
	var (
		list helixListResponse
		err  error
	)
	if ref.Kind == domain.KindStream {
		var userID string
		userID, err = r.twitchUserID(ctx, ref.ID)
		if err != nil {
			return Meta{}, err
		}
		list, err = r.helixList(ctx, "streams", url.Values{"user_id": {userID}})
	} else {
		list, err = r.helixList(ctx, ref.Kind+"s", url.Values{"id": {ref.ID}})
	}
	if err != nil {
		return Meta{}, err
	}
	if len(list.Data) == 0 {
		return Meta{}, fmt.Errorf("twitch %s %s: %w", ref.Kind, ref.ID, ErrNoResult)
	}

	item := list.Data[0]
	meta := Meta{
		Title: item.Title,
		Icon:  twitchIcon,
		Color: twitchColor,
	}
	if item.Duration != "" {
		meta.Duration = FormatDigitRuns(string(item.Duration))
	}
	return meta, nil
}

func (r *HTTPResolver) twitchUserID(ctx context.Context, login string) (string, error) {
	list, err := r.helixList(ctx, "users", url.Values{"login": {login}})
	if err != nil {
		return "", err
	}
	if len(list.Data) == 0 {
		return "", fmt.Errorf("twitch user %s: %w", login, ErrNoResult)
	}
	return list.Data[0].ID, nil
}

func (r *HTTPResolver) helixList(ctx context.Context, resource string, params url.Values) (helixListResponse, error) {
	var list helixListResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.twitchBase+"/"+resource+"?"+params.Encode(), nil)
	if err != nil {
		return list, fmt.Errorf("failed to create twitch request: %w", err)
	}
	req.Header.Set("Client-ID", r.twitchClientID)

	resp, err := r.client.Do(req)
	if err != nil {
		return list, fmt.Errorf("twitch %s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return list, fmt.Errorf("twitch %s returned status: %d", resource, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return list, fmt.Errorf("failed to decode twitch %s response: %w", resource, err)
	}
	return list, nil
}
