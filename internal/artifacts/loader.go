package artifacts

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spacesedan/sentitrack/internal/classifier"
	"github.com/spacesedan/sentitrack/internal/models"
	"github.com/spacesedan/sentitrack/internal/vectorizer"
)

// Artifacts is an immutable vectorizer/classifier pair.
type Artifacts struct {
	Vectorizer     *vectorizer.TFIDF
	Classifier     classifier.Model
	ModelPath      string
	VectorizerPath string
	// Fingerprint is a SHA-256 over both files and identifies the pair in
	// score caches.
	Fingerprint string
}

type Loader interface {
	Load(modelPath, vectorizerPath string) (*Artifacts, error)
}

// FileLoader reads JSON artifacts from disk. Relative paths resolve against
// BaseDir.
type FileLoader struct {
	BaseDir string
}

func NewFileLoader(baseDir string) *FileLoader {
	return &FileLoader{BaseDir: baseDir}
}

func (l *FileLoader) Resolve(path string) string {
	return ResolvePath(l.BaseDir, path)
}

func ResolvePath(baseDir, path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (l *FileLoader) Load(modelPath, vectorizerPath string) (*Artifacts, error) {
	modelPath = l.Resolve(modelPath)
	vectorizerPath = l.Resolve(vectorizerPath)
	start := time.Now()

	// Both files must be present before either is decoded.
	if err := checkReadable(ROLE_MODEL, modelPath); err != nil {
		return nil, err
	}
	if err := checkReadable(ROLE_VECTORIZER, vectorizerPath); err != nil {
		return nil, err
	}

	modelBytes, err := readArtifact(ROLE_MODEL, modelPath)
	if err != nil {
		return nil, err
	}
	vectorizerBytes, err := readArtifact(ROLE_VECTORIZER, vectorizerPath)
	if err != nil {
		return nil, err
	}

	var vecFile models.VectorizerFile
	if err := json.Unmarshal(vectorizerBytes, &vecFile); err != nil {
		return nil, corrupt(ROLE_VECTORIZER, vectorizerPath, fmt.Errorf("failed to decode: %w", err))
	}
	vec, err := vectorizer.NewTFIDF(vecFile)
	if err != nil {
		return nil, corrupt(ROLE_VECTORIZER, vectorizerPath, err)
	}

	var clfFile models.ClassifierFile
	if err := json.Unmarshal(modelBytes, &clfFile); err != nil {
		return nil, corrupt(ROLE_MODEL, modelPath, fmt.Errorf("failed to decode: %w", err))
	}
	clf, err := classifier.New(clfFile)
	if err != nil {
		return nil, corrupt(ROLE_MODEL, modelPath, err)
	}

	if vec.Dimension() != clf.Dimension() {
		slog.Warn("[ArtifactLoader] Vectorizer and classifier dimensions differ, inference will fail",
			slog.Int("vectorizer_dim", vec.Dimension()),
			slog.Int("classifier_dim", clf.Dimension()))
	}

	slog.Info("[ArtifactLoader] Artifacts loaded",
		slog.String("model", modelPath),
		slog.String("vectorizer", vectorizerPath),
		slog.Int("features", vec.Dimension()),
		slog.Duration("elapsed", time.Since(start)))

	return &Artifacts{
		Vectorizer:     vec,
		Classifier:     clf,
		ModelPath:      modelPath,
		VectorizerPath: vectorizerPath,
		Fingerprint:    fingerprint(modelBytes, vectorizerBytes),
	}, nil
}

func checkReadable(role, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return notFound(role, path, err)
	}
	if !info.Mode().IsRegular() {
		return notFound(role, path, fmt.Errorf("not a regular file"))
	}

	f, err := os.Open(path)
	if err != nil {
		return notFound(role, path, err)
	}
	return f.Close()
}

func readArtifact(role, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, notFound(role, path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, notFound(role, path, fmt.Errorf("failed to read: %w", err))
	}
	return data, nil
}

func fingerprint(model, vectorizer []byte) string {
	h := sha256.New()
	h.Write(model)
	h.Write([]byte{0})
	h.Write(vectorizer)
	return hex.EncodeToString(h.Sum(nil))
}
