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
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sagewood/corpus/core"
	"github.com/sagewood/corpus/extract"
)

// LocalEnumerator lists regular files under a corpus root directory.
// Topic sub-directories are named by the topic slug rule.
type LocalEnumerator struct {
	root   string
	logger *slog.Logger
}

var _ Enumerator = (*LocalEnumerator)(nil)

// NewLocalEnumerator creates an enumerator over the given root directory.
// The root is resolved to an absolute path once, so every descriptor
// carries an OS-canonicalized SourcePath.
func NewLocalEnumerator(root string) (*LocalEnumerator, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &LocalEnumerator{
		root:   abs,
		logger: slog.Default().With("component", "local-source"),
	}, nil
}

// Enumerate walks the corpus tree and yields one descriptor per regular
// file. With a topic filter only the topic's slug sub-directory is
// walked; without one, each item's topic is inferred from its first path
// segment under the root. A missing root or topic directory degrades to
// an empty listing.
func (e *LocalEnumerator) Enumerate(ctx context.Context, topicFilter string) ([]Descriptor, error) {
	base := e.root
	topicFilter = core.NormalizeTopic(topicFilter)
	if topicFilter != "" {
		base = filepath.Join(e.root, core.SlugifyTopic(topicFilter))
	}

	if _, err := os.Stat(base); err != nil {
		if os.IsNotExist(err) {
			e.logger.Debug("source directory absent, empty enumeration", "dir", base)
			return nil, nil
		}
		return nil, err
	}

	var descriptors []Descriptor
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.Type().IsRegular() {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		topic := topicFilter
		if topic == "" {
			topic = e.inferTopic(abs)
		}

		descriptors = append(descriptors, Descriptor{
			SourcePath: abs,
			Filename:   d.Name(),
			Topic:      topic,
			Format:     extract.FormatFromFilename(d.Name()),
			Load: func(context.Context) ([]byte, error) {
				return os.ReadFile(abs)
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return descriptors, nil
}

// inferTopic maps a file's first path segment under the root back to a
// human topic label. Files directly under the root have no topic.
func (e *LocalEnumerator) inferTopic(abs string) string {
	rel, err := filepath.Rel(e.root, abs)
	if err != nil {
		return ""
	}
	rel = filepath.ToSlash(rel)
	segments := strings.SplitN(rel, "/", 2)
	if len(segments) < 2 {
		return ""
	}
	return core.UnslugTopic(segments[0])
}
