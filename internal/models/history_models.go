package models

type Trend struct {
	Points []float64 `json:"points"`
	Mean   float64   `json:"mean"`
	Delta  float64   `json:"delta"`
}

type HistoryView struct {
	Scores []float64 `json:"scores"`
	Size   int       `json:"size"`
	Trend  *Trend    `json:"trend,omitempty"`
}
