package models

type Window struct {
	ID        string  `json:"id"`
	Component string  `json:"component,omitempty"`
	URL       string  `json:"url,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
}
