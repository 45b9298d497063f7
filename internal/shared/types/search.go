package types

// ResultType identifies the collection a search result came from
type ResultType string

const (
	ResultApp     ResultType = "app"
	ResultProject ResultType = "project"
	ResultSkill   ResultType = "skill"
)

// ActionKind identifies what activating a search result does
type ActionKind string

const (
	ActionOpenApp ActionKind = "open_app"
)

// Action is the bound activation of a search result
type Action struct {
	Kind  ActionKind `json:"kind"`
	AppID string     `json:"appId"`
}

// SearchResult is a single ranked search match
type SearchResult struct {
	Type        ResultType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon,omitempty"`
	Action      Action     `json:"action"`
}
