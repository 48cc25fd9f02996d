package domain

type ContentType string

const (
	ContentSong  ContentType = "song"
	ContentVideo ContentType = "video"
)

// Content is a pay-per-view item unlocked individually per payment.
type Content struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	PriceUSD float64     `json:"priceUSD"`
	Type     ContentType `json:"type"`
	URL      string      `json:"url"`
}
