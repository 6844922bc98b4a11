/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package report

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/crud-latency-benchmark/conf"
	"github.com/RedHatInsights/crud-latency-benchmark/utils"
)

// regionName is used to avoid bucket location lookup against S3
// compatible storages that don't implement it
const regionName = "us-east-1"

var contentTypes = map[string]string{
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Uploader stores exported results tables into a bucket of S3 compatible
// storage.
type Uploader struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewUploader constructs new uploader for given configuration.
func NewUploader(configuration conf.UploadConfiguration) (*Uploader, error) {
	if configuration.Endpoint == "" {
		return nil, fmt.Errorf("upload endpoint is not set")
	}
	if configuration.Bucket == "" {
		return nil, fmt.Errorf("upload bucket is not set")
	}

	// endpoint might be specified with scheme
	endpoint, secure := utils.StripHTTPPrefix(configuration.Endpoint)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(configuration.AccessKey, configuration.SecretKey, ""),
		Secure: secure || configuration.UseSSL,
		Region: regionName,
	})
	if err != nil {
		return nil, err
	}

	return &Uploader{
		client: client,
		bucket: configuration.Bucket,
		prefix: configuration.Prefix,
	}, nil
}

// ObjectName returns name of object the file is stored under.
func (u *Uploader) ObjectName(filePath, runID string) string {
	return path.Join(u.prefix, runID, filepath.Base(filePath))
}

// Upload stores given file into the bucket and returns the object name.
func (u *Uploader) Upload(ctx context.Context, filePath, runID string) (string, error) {
	objectName := u.ObjectName(filePath, runID)

	options := minio.PutObjectOptions{
		ContentType: contentTypes[filepath.Ext(filePath)],
	}
	info, err := u.client.FPutObject(ctx, u.bucket, objectName, filePath, options)
	if err != nil {
		return "", err
	}

	log.Info().
		Str("Bucket", u.bucket).
		Str("Object", objectName).
		Int64("Size", info.Size).
		Msg("Results table uploaded")
	return objectName, nil
}
