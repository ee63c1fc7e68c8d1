package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// uploadAll publishes the written artifacts to the report bucket under a
// per-run prefix, creating the bucket on first use.
func (r *Reporter) uploadAll(ctx context.Context, runID string, arts *Artifacts) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check report bucket: %w", err)
	}
	if !exists {
		if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create report bucket: %w", err)
		}
	}

	uploads := map[string]string{
		arts.DatasetPath:        "text/csv",
		arts.ValidationPath:     "application/json",
		arts.ReconciliationPath: "application/json",
	}
	for path, contentType := range uploads {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read artifact %s: %w", path, err)
		}

		objectName := runID + "/" + filepath.Base(path)
		_, err = r.client.PutObject(ctx, r.bucket, objectName,
			bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: contentType})
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", objectName, err)
		}
		r.log.Info("Artifact uploaded",
			zap.String("bucket", r.bucket), zap.String("object", objectName))
	}
	return nil
}
