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

package badger

import (
	"encoding/binary"

	"github.com/sagewood/corpus/core"
)

// Key prefixes for the different record families sharing one database.
var (
	documentKeyPrefix   = []byte("doc:")
	topicIndexKeyPrefix = []byte("top:")
	providerConfigKey   = []byte("cfg:" + core.ProviderConfigKey)
)

// makeDocumentKey builds the record key for a document: doc:<id>.
// The ID is big-endian so record keys iterate in ascending ID order.
func makeDocumentKey(id core.ID) []byte {
	key := make([]byte, 0, len(documentKeyPrefix)+8)
	key = append(key, documentKeyPrefix...)
	key = binary.BigEndian.AppendUint64(key, uint64(id))
	return key
}

// makeTopicIndexKey builds the secondary index key for a document's topic:
// top:<topic>\x00<id>. The NUL separator keeps topics containing the
// prefix of another topic from colliding during prefix scans.
func makeTopicIndexKey(topic string, id core.ID) []byte {
	key := make([]byte, 0, len(topicIndexKeyPrefix)+len(topic)+1+8)
	key = append(key, topicIndexKeyPrefix...)
	key = append(key, topic...)
	key = append(key, 0x00)
	key = binary.BigEndian.AppendUint64(key, uint64(id))
	return key
}

// makeTopicIndexPrefix builds the scan prefix for all documents of a topic.
func makeTopicIndexPrefix(topic string) []byte {
	key := make([]byte, 0, len(topicIndexKeyPrefix)+len(topic)+1)
	key = append(key, topicIndexKeyPrefix...)
	key = append(key, topic...)
	key = append(key, 0x00)
	return key
}

// topicFromIndexKey recovers the topic label from a topic index key.
func topicFromIndexKey(key []byte) string {
	body := key[len(topicIndexKeyPrefix):]
	if len(body) < 9 {
		return ""
	}
	return string(body[:len(body)-9])
}

// idFromIndexKey recovers the document ID from a topic index key.
func idFromIndexKey(key []byte) core.ID {
	if len(key) < 8 {
		return 0
	}
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}
