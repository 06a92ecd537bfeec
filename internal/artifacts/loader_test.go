package artifacts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentitrack/internal/vectorizer"
)

const (
	validVectorizer = `{
		"type": "tfidf",
		"vocabulary": {"good": 0, "bad": 1, "plot": 2},
		"idf": [1.2, 1.4, 1.0],
		"ngram_range": [1, 1]
	}`
	validModel = `{
		"type": "logistic_regression",
		"classes": [0, 1],
		"coef": [[2.5, -2.5, 0.1]],
		"intercept": [0.0]
	}`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sentiment_model.json", validModel)
	writeFile(t, dir, "tfidf_vectorizer.json", validVectorizer)

	a, err := NewFileLoader(dir).Load("sentiment_model.json", "tfidf_vectorizer.json")
	require.NoError(t, err)

	assert.Equal(t, 3, a.Vectorizer.Dimension())
	assert.Equal(t, 3, a.Classifier.Dimension())
	assert.Equal(t, filepath.Join(dir, "sentiment_model.json"), a.ModelPath)
	assert.Len(t, a.Fingerprint, 64)

	vec, err := a.Vectorizer.Transform("good good plot")
	require.NoError(t, err)
	p, err := a.Classifier.PredictProbability(vec)
	require.NoError(t, err)
	assert.Greater(t, p, 0.5)
}

func TestFileLoader_MissingModel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tfidf_vectorizer.json", validVectorizer)

	a, err := NewFileLoader(dir).Load("sentiment_model.json", "tfidf_vectorizer.json")
	assert.Nil(t, a)
	require.ErrorIs(t, err, ErrArtifactNotFound)
	assert.NotErrorIs(t, err, ErrArtifactCorrupt)

	var artifactErr *ArtifactError
	require.True(t, errors.As(err, &artifactErr))
	assert.Equal(t, ROLE_MODEL, artifactErr.Role)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileLoader_MissingVectorizerCheckedBeforeDecoding(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sentiment_model.json", "not json at all")

	_, err := NewFileLoader(dir).Load("sentiment_model.json", "tfidf_vectorizer.json")
	require.ErrorIs(t, err, ErrArtifactNotFound)

	var artifactErr *ArtifactError
	require.True(t, errors.As(err, &artifactErr))
	assert.Equal(t, ROLE_VECTORIZER, artifactErr.Role)
}

func TestFileLoader_DirectoryIsNotAnArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sentiment_model.json"), 0o755))
	writeFile(t, dir, "tfidf_vectorizer.json", validVectorizer)

	_, err := NewFileLoader(dir).Load("sentiment_model.json", "tfidf_vectorizer.json")
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestFileLoader_Corrupt(t *testing.T) {
	tests := []struct {
		name       string
		model      string
		vectorizer string
		role       string
	}{
		{"model not json", "{", validVectorizer, ROLE_MODEL},
		{"vectorizer not json", validModel, "\x00\x01binary", ROLE_VECTORIZER},
		{"vectorizer wrong shape", validModel, `{"type":"tfidf","vocabulary":{"a":5},"idf":[1]}`, ROLE_VECTORIZER},
		{"model wrong shape", `{"type":"logistic_regression","coef":[],"intercept":[0]}`, validVectorizer, ROLE_MODEL},
		{"model unknown type", `{"type":"random_forest"}`, validVectorizer, ROLE_MODEL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "m.json", tt.model)
			writeFile(t, dir, "v.json", tt.vectorizer)

			a, err := NewFileLoader(dir).Load("m.json", "v.json")
			assert.Nil(t, a)
			require.ErrorIs(t, err, ErrArtifactCorrupt)
			assert.NotErrorIs(t, err, ErrArtifactNotFound)

			var artifactErr *ArtifactError
			require.True(t, errors.As(err, &artifactErr))
			assert.Equal(t, tt.role, artifactErr.Role)
		})
	}
}

func TestFileLoader_CorruptWrapsValidationError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m.json", validModel)
	writeFile(t, dir, "v.json", `{"type":"tfidf","vocabulary":{}}`)

	_, err := NewFileLoader(dir).Load("m.json", "v.json")
	assert.ErrorIs(t, err, vectorizer.ErrInvalidVectorizer)
}

func TestFileLoader_DimensionMismatchStillLoads(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m.json", `{"type":"logistic_regression","coef":[[1, 2]],"intercept":[0]}`)
	writeFile(t, dir, "v.json", validVectorizer)

	a, err := NewFileLoader(dir).Load("m.json", "v.json")
	require.NoError(t, err)
	assert.NotEqual(t, a.Vectorizer.Dimension(), a.Classifier.Dimension())
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/srv/models", "m.json"), ResolvePath("/srv/models", "m.json"))
	assert.Equal(t, "/abs/m.json", ResolvePath("/srv/models", "/abs/../abs/m.json"))
}
