package session

import "github.com/spacesedan/sentitrack/internal/models"

// MIN_TREND_POINTS is the smallest history that yields a trend.
const MIN_TREND_POINTS = 2

// History is the ordered sequence of scores for one session. It is not safe
// for concurrent use; Session serializes access.
type History struct {
	scores []float64
}

func (h *History) Append(score float64) {
	h.scores = append(h.scores, score)
}

func (h *History) Reset() {
	h.scores = nil
}

func (h *History) Size() int {
	return len(h.scores)
}

// Scores returns a copy of the recorded scores, oldest first.
func (h *History) Scores() []float64 {
	out := make([]float64, len(h.scores))
	copy(out, h.scores)
	return out
}

func (h *History) Trend() (models.Trend, bool) {
	if len(h.scores) < MIN_TREND_POINTS {
		return models.Trend{}, false
	}

	var sum float64
	for _, s := range h.scores {
		sum += s
	}

	return models.Trend{
		Points: h.Scores(),
		Mean:   sum / float64(len(h.scores)),
		Delta:  h.scores[len(h.scores)-1] - h.scores[0],
	}, true
}

func (h *History) View() models.HistoryView {
	view := models.HistoryView{
		Scores: h.Scores(),
		Size:   h.Size(),
	}
	if trend, ok := h.Trend(); ok {
		view.Trend = &trend
	}
	return view
}
