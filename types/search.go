package types

// Search result kinds.
const (
	SearchKindGuide = "guide"
	SearchKindPost  = "post"
)

// SearchResult is a guide or post matched by a free-text search.
// Kind discriminates which entity the ID refers to; Tags is always
// empty for guides.
type SearchResult struct {
	Kind  string   `json:"type"`
	ID    int      `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}
