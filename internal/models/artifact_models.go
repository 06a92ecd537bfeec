package models

// On-disk shapes of the two artifacts produced by the training export.

const (
	VECTORIZER_TYPE_TFIDF          = "tfidf"
	CLASSIFIER_TYPE_LOGISTIC       = "logistic_regression"
	CLASSIFIER_TYPE_MULTINOMIAL_NB = "multinomial_nb"
)

type VectorizerFile struct {
	Type          string         `json:"type"`
	Vocabulary    map[string]int `json:"vocabulary"`
	IDF           []float64      `json:"idf"`
	Lowercase     *bool          `json:"lowercase,omitempty"`
	NgramRange    []int          `json:"ngram_range,omitempty"`
	TokenPattern  string         `json:"token_pattern,omitempty"`
	StopWords     []string       `json:"stop_words,omitempty"`
	SublinearTF   bool           `json:"sublinear_tf"`
	UseIDF        *bool          `json:"use_idf,omitempty"`
	Norm          *string        `json:"norm,omitempty"`
	StripMarkdown bool           `json:"strip_markdown"`
}

type ClassifierFile struct {
	Type          string      `json:"type"`
	Classes       []any       `json:"classes"`
	PositiveClass *int        `json:"positive_class,omitempty"`
	Coef          [][]float64 `json:"coef,omitempty"`
	Intercept     []float64   `json:"intercept,omitempty"`

	ClassLogPrior  []float64   `json:"class_log_prior,omitempty"`
	FeatureLogProb [][]float64 `json:"feature_log_prob,omitempty"`
}
