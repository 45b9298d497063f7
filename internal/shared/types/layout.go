package types

// IconPosition is the persisted placement of one desktop icon
type IconPosition struct {
	AppID string `json:"appId"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}
