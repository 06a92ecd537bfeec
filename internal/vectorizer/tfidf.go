// Package vectorizer turns review text into the sparse TF-IDF features a
// classifier was trained on. It only replays the fitted vocabulary and
// weights; nothing is ever re-fitted at inference time.
package vectorizer

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/spacesedan/sentitrack/internal/features"
	"github.com/spacesedan/sentitrack/internal/models"
)

const (
	NORM_L2   = "l2"
	NORM_L1   = "l1"
	NORM_NONE = ""
)

var ErrInvalidVectorizer = errors.New("invalid vectorizer")

type TFIDF struct {
	vocabulary    map[string]int
	terms         []string
	idf           []float64
	useIDF        bool
	lowercase     bool
	minN, maxN    int
	tokenPattern  *regexp.Regexp
	stopWords     map[string]struct{}
	sublinearTF   bool
	norm          string
	stripMarkdown bool
}

// NewTFIDF validates a decoded vectorizer file and builds the transformer.
// Every error wraps ErrInvalidVectorizer.
func NewTFIDF(file models.VectorizerFile) (*TFIDF, error) {
	if file.Type != "" && file.Type != models.VECTORIZER_TYPE_TFIDF {
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidVectorizer, file.Type)
	}
	if len(file.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInvalidVectorizer)
	}

	dim := len(file.Vocabulary)
	terms := make([]string, dim)
	for term, idx := range file.Vocabulary {
		if idx < 0 || idx >= dim {
			return nil, fmt.Errorf("%w: term %q has index %d outside [0,%d)", ErrInvalidVectorizer, term, idx, dim)
		}
		if terms[idx] != "" {
			return nil, fmt.Errorf("%w: index %d assigned to %q and %q", ErrInvalidVectorizer, idx, terms[idx], term)
		}
		terms[idx] = term
	}

	useIDF := file.UseIDF == nil || *file.UseIDF
	if useIDF {
		if len(file.IDF) != dim {
			return nil, fmt.Errorf("%w: idf has %d weights for %d terms", ErrInvalidVectorizer, len(file.IDF), dim)
		}
		for i, w := range file.IDF {
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return nil, fmt.Errorf("%w: idf[%d] = %v", ErrInvalidVectorizer, i, w)
			}
		}
	}

	minN, maxN := 1, 1
	switch len(file.NgramRange) {
	case 0:
	case 2:
		minN, maxN = file.NgramRange[0], file.NgramRange[1]
		if minN < 1 || maxN < minN {
			return nil, fmt.Errorf("%w: ngram_range %v", ErrInvalidVectorizer, file.NgramRange)
		}
	default:
		return nil, fmt.Errorf("%w: ngram_range must have two entries", ErrInvalidVectorizer)
	}

	norm := NORM_L2
	if file.Norm != nil {
		norm = strings.ToLower(*file.Norm)
	}
	if norm != NORM_L2 && norm != NORM_L1 && norm != NORM_NONE {
		return nil, fmt.Errorf("%w: unsupported norm %q", ErrInvalidVectorizer, norm)
	}

	pattern, err := compileTokenPattern(file.TokenPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidVectorizer, err)
	}

	lowercase := file.Lowercase == nil || *file.Lowercase
	// Stop words match the lowercased tokens as written in the file.
	stop := make(map[string]struct{}, len(file.StopWords))
	for _, w := range file.StopWords {
		stop[w] = struct{}{}
	}

	return &TFIDF{
		vocabulary:    file.Vocabulary,
		terms:         terms,
		idf:           file.IDF,
		useIDF:        useIDF,
		lowercase:     lowercase,
		minN:          minN,
		maxN:          maxN,
		tokenPattern:  pattern,
		stopWords:     stop,
		sublinearTF:   file.SublinearTF,
		norm:          norm,
		stripMarkdown: file.StripMarkdown,
	}, nil
}

func (v *TFIDF) Dimension() int {
	return len(v.terms)
}

// Term returns the vocabulary entry stored at a feature index.
func (v *TFIDF) Term(index int) (string, bool) {
	if index < 0 || index >= len(v.terms) {
		return "", false
	}
	return v.terms[index], true
}

// Analyze returns the n-grams the vectorizer extracts from text, before the
// vocabulary lookup.
func (v *TFIDF) Analyze(text string) []string {
	if v.stripMarkdown {
		text = ConvertMarkdownToText(text)
	}
	if v.lowercase {
		text = strings.ToLower(text)
	}

	raw := v.tokenPattern.FindAllString(text, -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := v.stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}

	return nGrams(tokens, v.minN, v.maxN)
}

func (v *TFIDF) Transform(text string) (features.Vector, error) {
	counts := make(map[int]float64)
	for _, gram := range v.Analyze(text) {
		if idx, ok := v.vocabulary[gram]; ok {
			counts[idx]++
		}
	}

	for idx, tf := range counts {
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		if v.useIDF {
			tf *= v.idf[idx]
		}
		counts[idx] = tf
	}

	vec := features.FromMap(v.Dimension(), counts)
	normalize(vec.Values, v.norm)
	return vec, nil
}

func normalize(values []float64, norm string) {
	var total float64
	switch norm {
	case NORM_L2:
		for _, x := range values {
			total += x * x
		}
		total = math.Sqrt(total)
	case NORM_L1:
		for _, x := range values {
			total += math.Abs(x)
		}
	default:
		return
	}

	if total == 0 {
		return
	}
	for i := range values {
		values[i] /= total
	}
}
