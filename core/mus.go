package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-maintained MUS serializers for persisted records. Field order is the
// wire format; append new fields at the end only.

// IDMUS serializes record IDs.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

// DocumentMUS serializes Document records.
var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (documentMUS) Size(doc Document) int {
	size := varint.Uint64.Size(uint64(doc.Id))
	size += ord.String.Size(doc.Filename)
	size += ord.String.Size(doc.Path)
	size += ord.String.Size(doc.Topic)
	size += ord.String.Size(doc.Text)
	size += varint.Int.Size(len(doc.Embedding))
	for _, f := range doc.Embedding {
		size += raw.Float32.Size(f)
	}
	size += ord.String.Size(doc.EmbeddingProvider)
	size += varint.Int64.Size(doc.InsertedAt.UnixMicro())
	size += varint.Int64.Size(doc.UpdatedAt.UnixMicro())
	return size
}

func (documentMUS) Marshal(doc Document, bs []byte) int {
	n := varint.Uint64.Marshal(uint64(doc.Id), bs)
	n += ord.String.Marshal(doc.Filename, bs[n:])
	n += ord.String.Marshal(doc.Path, bs[n:])
	n += ord.String.Marshal(doc.Topic, bs[n:])
	n += ord.String.Marshal(doc.Text, bs[n:])
	n += varint.Int.Marshal(len(doc.Embedding), bs[n:])
	for _, f := range doc.Embedding {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	n += ord.String.Marshal(doc.EmbeddingProvider, bs[n:])
	n += varint.Int64.Marshal(doc.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(doc.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (Document, int, error) {
	var doc Document

	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return doc, n, err
	}
	doc.Id = ID(id)

	var m int
	if doc.Filename, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return doc, n + m, err
	}
	n += m
	if doc.Path, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return doc, n + m, err
	}
	n += m
	if doc.Topic, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return doc, n + m, err
	}
	n += m
	if doc.Text, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return doc, n + m, err
	}
	n += m

	var count int
	if count, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return doc, n + m, err
	}
	n += m
	if count > 0 {
		doc.Embedding = make([]float32, count)
		for i := 0; i < count; i++ {
			if doc.Embedding[i], m, err = raw.Float32.Unmarshal(bs[n:]); err != nil {
				return doc, n + m, err
			}
			n += m
		}
	}

	if doc.EmbeddingProvider, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return doc, n + m, err
	}
	n += m

	var micros int64
	if micros, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return doc, n + m, err
	}
	n += m
	doc.InsertedAt = time.UnixMicro(micros).UTC()

	if micros, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return doc, n + m, err
	}
	n += m
	doc.UpdatedAt = time.UnixMicro(micros).UTC()

	return doc, n, nil
}

// ProviderConfigMUS serializes ProviderConfig records.
var ProviderConfigMUS = providerConfigMUS{}

type providerConfigMUS struct{}

func (providerConfigMUS) Size(cfg ProviderConfig) int {
	size := ord.String.Size(cfg.Key)
	size += ord.String.Size(cfg.Provider)
	size += varint.Int64.Size(cfg.UpdatedAt.UnixMicro())
	return size
}

func (providerConfigMUS) Marshal(cfg ProviderConfig, bs []byte) int {
	n := ord.String.Marshal(cfg.Key, bs)
	n += ord.String.Marshal(cfg.Provider, bs[n:])
	n += varint.Int64.Marshal(cfg.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (providerConfigMUS) Unmarshal(bs []byte) (ProviderConfig, int, error) {
	var cfg ProviderConfig

	key, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return cfg, n, err
	}
	cfg.Key = key

	var m int
	if cfg.Provider, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return cfg, n + m, err
	}
	n += m

	var micros int64
	if micros, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return cfg, n + m, err
	}
	n += m
	cfg.UpdatedAt = time.UnixMicro(micros).UTC()

	return cfg, n, nil
}
