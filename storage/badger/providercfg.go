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
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sagewood/corpus/core"
	"github.com/sagewood/corpus/storage"
)

// ProviderConfigRepository implements storage.ProviderConfigRepository for BadgerDB.
type ProviderConfigRepository struct {
	backend *Backend
}

var _ storage.ProviderConfigRepository = (*ProviderConfigRepository)(nil)

// NewProviderConfigRepository creates a new ProviderConfigRepository.
func NewProviderConfigRepository(backend *Backend) *ProviderConfigRepository {
	return &ProviderConfigRepository{
		backend: backend,
	}
}

// Close is a no-op; the shared backend owns the database handle.
func (r *ProviderConfigRepository) Close() error {
	return nil
}

// GetProviderConfig reads the singleton provider selection record.
// Returns storage.ErrNotFound when it has never been written.
func (r *ProviderConfigRepository) GetProviderConfig(ctx context.Context) (*core.ProviderConfig, error) {
	var config *core.ProviderConfig
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(providerConfigKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			config, unmarshalErr = storage.UnmarshalProviderConfig(val)
			return unmarshalErr
		})
	}, false)

	return config, err
}

// SetProviderConfig writes the singleton record, creating it lazily on the
// first call.
func (r *ProviderConfigRepository) SetProviderConfig(ctx context.Context, provider string) (*core.ProviderConfig, error) {
	config := &core.ProviderConfig{
		Key:      core.ProviderConfigKey,
		Provider: provider,
	}
	if err := core.ValidateProviderConfig(config); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		config.UpdatedAt = time.Now().UTC()

		value := storage.MarshalProviderConfig(config)
		if err := tx.Set(providerConfigKey, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return config, nil
}
