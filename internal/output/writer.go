// Package output saves analysis results next to their source objects.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/pricofy/comprehend-s3/internal/domain"
)

const contentType = "application/json"

// Settings controls where results are written.
type Settings struct {
	// Bucket replaces the input bucket when set.
	Bucket string
	// Folder is the key prefix, without trailing slash.
	Folder string
}

// Putter stores object bytes.
type Putter interface {
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// Writer serializes analyses to JSON objects.
type Writer struct {
	store    Putter
	settings Settings
	log      *slog.Logger
}

// NewWriter creates a Writer. A trailing slash on the folder is dropped.
func NewWriter(store Putter, settings Settings, log *slog.Logger) *Writer {
	settings.Folder = strings.TrimRight(settings.Folder, "/")
	return &Writer{store: store, settings: settings, log: log}
}

// Location derives the output bucket and key for an input object:
// {bucket override or input bucket}/{folder}/{input base name without extension}.json
func Location(settings Settings, bucket, key string) (string, string) {
	outBucket := settings.Bucket
	if outBucket == "" {
		outBucket = bucket
	}
	folder := strings.TrimRight(settings.Folder, "/")
	return outBucket, fmt.Sprintf("%s/%s.json", folder, stem(key))
}

// stem returns the last path element of key without its extension.
// Leading dots belong to the name, so ".profile" has no extension.
func stem(key string) string {
	name := key[strings.LastIndex(key, "/")+1:]
	ext := path.Ext(strings.TrimLeft(name, "."))
	return name[:len(name)-len(ext)]
}

// Save writes analysis to the location derived from the input object,
// overwriting any previous result.
func (w *Writer) Save(ctx context.Context, bucket, key string, analysis *domain.Analysis) error {
	outBucket, outKey := Location(w.settings, bucket, key)

	body, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis of s3://%s/%s: %w", bucket, key, err)
	}

	w.log.InfoContext(ctx, "saving", slog.String("uri", "s3://"+outBucket+"/"+outKey))
	return w.store.Put(ctx, outBucket, outKey, body, contentType)
}
