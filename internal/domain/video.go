package domain

// Provider values as sniffed from submitted URLs. These are the literal
// substrings the clients already key their players off, so they go out on
// the wire unchanged. An empty provider means the URL was not recognized.
const (
	ProviderYouTube = "youtu"
	ProviderTwitch  = "twitch"
)

// Kind values for a video reference. KindStream is the fallback when the
// URL gives no hint.
const (
	KindClip    = "clip"
	KindVideo   = "video"
	KindYouTube = "youtu"
	KindStream  = "stream"
)

// VideoReference is the parsed provider/kind/id triple extracted from a
// submitted URL, before any metadata enrichment. It only lives for the
// duration of one add-video operation.
type VideoReference struct {
	ID       string
	Provider string
	Kind     string
}

// VideoItem is a queue entry enriched with provider metadata.
type VideoItem struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	VideoID  string `json:"videoId"`
	Provider string `json:"provider"`
	Kind     string `json:"type"`
}
