// Copyright 2026 Sagewood Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package source

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sagewood/corpus/core"
	"github.com/sagewood/corpus/extract"
)

// ObjectConfig holds the connection settings for the object-storage
// backend.
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Prefix    string // key prefix under which topic folders live
}

// ObjectEnumerator lists objects under a bucket prefix. Topic
// sub-prefixes follow the same slug rule as local topic directories.
type ObjectEnumerator struct {
	client *minio.Client
	bucket string
	prefix string
	logger *slog.Logger
}

var _ Enumerator = (*ObjectEnumerator)(nil)

// NewObjectEnumerator creates an enumerator over the configured bucket.
func NewObjectEnumerator(cfg ObjectConfig) (*ObjectEnumerator, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &ObjectEnumerator{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: slog.Default().With("component", "object-source"),
	}, nil
}

// ObjectURI builds the canonical identity for one stored object.
func ObjectURI(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}

// Enumerate lists all objects under the prefix (scoped to the topic's
// slug sub-prefix when a filter is given) and yields one descriptor per
// object. Directory-marker keys (zero-length, "/"-suffixed) are skipped.
// Each descriptor's Load fetches the object body on demand.
func (e *ObjectEnumerator) Enumerate(ctx context.Context, topicFilter string) ([]Descriptor, error) {
	listPrefix := e.prefix
	topicFilter = core.NormalizeTopic(topicFilter)
	if topicFilter != "" {
		listPrefix = e.join(core.SlugifyTopic(topicFilter))
	}
	if listPrefix != "" {
		listPrefix += "/"
	}

	var descriptors []Descriptor
	for object := range e.client.ListObjects(ctx, e.bucket, minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, object.Err
		}
		if object.Size == 0 && strings.HasSuffix(object.Key, "/") {
			continue // directory marker
		}

		key := object.Key
		topic := topicFilter
		if topic == "" {
			topic = e.inferTopic(key)
		}

		descriptors = append(descriptors, Descriptor{
			SourcePath: ObjectURI(e.bucket, key),
			Filename:   path.Base(key),
			Topic:      topic,
			Format:     extract.FormatFromFilename(key),
			Load: func(ctx context.Context) ([]byte, error) {
				return e.fetch(ctx, key)
			},
		})
	}

	return descriptors, nil
}

// EnsureTopicFolders touches a placeholder key under each topic's slug
// sub-prefix so external tooling discovers the expected layout before the
// first upload. The touch is idempotent.
func (e *ObjectEnumerator) EnsureTopicFolders(ctx context.Context, topics []string) error {
	for _, topic := range topics {
		key := e.join(core.SlugifyTopic(topic)) + "/.keep"

		if _, err := e.client.StatObject(ctx, e.bucket, key, minio.StatObjectOptions{}); err == nil {
			continue
		}

		_, err := e.client.PutObject(ctx, e.bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{
			ContentType: "application/octet-stream",
		})
		if err != nil {
			return err
		}
		e.logger.Debug("created topic placeholder", "key", key)
	}
	return nil
}

func (e *ObjectEnumerator) fetch(ctx context.Context, key string) ([]byte, error) {
	object, err := e.client.GetObject(ctx, e.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()
	return io.ReadAll(object)
}

// inferTopic maps an object key's first segment under the prefix back to
// a human topic label.
func (e *ObjectEnumerator) inferTopic(key string) string {
	rel := strings.TrimPrefix(key, e.prefix)
	rel = strings.Trim(rel, "/")
	segments := strings.SplitN(rel, "/", 2)
	if len(segments) < 2 {
		return ""
	}
	return core.UnslugTopic(segments[0])
}

func (e *ObjectEnumerator) join(slug string) string {
	if e.prefix == "" {
		return slug
	}
	return e.prefix + "/" + slug
}
