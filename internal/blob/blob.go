// Package blob stores uploaded images and deletes them by the reference
// embedded in a previously returned URL. Two backends exist: a minio
// remote store and a local-filesystem store. When the remote backend is
// configured, every failed remote write transparently falls back to the
// local store; reads never happen here (URLs are served by the CDN or the
// static file handler).
package blob

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jatinm79/Real-Estate-App/internal/adapters/observability"
	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

type Options struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	LocalDir   string
	ForceLocal bool
}

// New selects the backend once at startup: local-only when forced or when
// the credentials triple is incomplete, otherwise remote with local
// fallback.
func New(opts Options) (domain.BlobStore, error) {
	local := NewLocal(opts.LocalDir)
	if opts.ForceLocal || opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" {
		return local, nil
	}
	remote, err := NewRemote(opts.Endpoint, opts.AccessKey, opts.SecretKey, opts.Bucket, opts.UseSSL)
	if err != nil {
		return nil, err
	}
	return &fallbackStore{remote: remote, local: local}, nil
}

// fallbackStore writes to the remote backend and retries the same bytes
// against the local store on any remote failure. Local write failure is
// the only one that propagates.
type fallbackStore struct {
	remote domain.BlobStore
	local  domain.BlobStore
}

func (f *fallbackStore) Store(ctx context.Context, data []byte, category string) (string, error) {
	url, err := f.remote.Store(ctx, data, category)
	if err == nil {
		return url, nil
	}
	log.Warn().Err(err).Str("category", category).Msg("remote upload failed, falling back to local storage")
	observability.ObserveBlob("minio", "store", "fallback")
	return f.local.Store(ctx, data, category)
}

func (f *fallbackStore) Remove(ctx context.Context, ref string) error {
	if strings.HasPrefix(ref, "/uploads/") {
		return f.local.Remove(ctx, ref)
	}
	return f.remote.Remove(ctx, ref)
}
