package models

type HostProfile struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Bio         string   `json:"bio,omitempty"`
	Story       string   `json:"story,omitempty"`
	Languages   []string `json:"languages"`
	PhotoURL    string   `json:"photo_url,omitempty"`
}
