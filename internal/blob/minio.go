package blob

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/jatinm79/Real-Estate-App/internal/adapters/observability"
)

// Remote stores normalized images in a minio bucket. Object keys carry no
// extension (cloudinary-style public ids) so the reference parsed back out
// of a URL is always the full key.
type Remote struct {
	client *minio.Client
	bucket string
}

func NewRemote(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Remote, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx := context.Background()
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errExists := client.BucketExists(ctx, bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("minio bucket %s: %w", bucket, err)
		}
	}
	return &Remote{client: client, bucket: bucket}, nil
}

func (r *Remote) Store(ctx context.Context, data []byte, category string) (string, error) {
	// Normalization is best-effort: bytes the decoder cannot handle are
	// stored as-is rather than failing the upload.
	normalized, err := Normalize(data)
	if err != nil {
		log.Warn().Err(err).Msg("image normalization failed, storing original bytes")
		normalized = data
	}

	key := category + "/" + uuid.NewString()
	_, err = r.client.PutObject(ctx, r.bucket, key,
		bytes.NewReader(normalized), int64(len(normalized)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		observability.ObserveBlob("minio", "store", "error")
		return "", fmt.Errorf("minio upload %s: %w", key, err)
	}
	observability.ObserveBlob("minio", "store", "ok")
	return fmt.Sprintf("%s/%s/%s", r.client.EndpointURL(), r.bucket, key), nil
}

// Remove deletes by stored URL or bare object key. Failures are logged and
// surfaced, but callers treat remote deletion as best-effort: a stale blob
// is preferable to failing a committed database write.
func (r *Remote) Remove(ctx context.Context, ref string) error {
	key := ref
	if strings.Contains(ref, "://") {
		k, ok := ObjectKey(r.bucket, ref)
		if !ok {
			log.Warn().Str("ref", ref).Msg("no object key recoverable from URL, skipping remote delete")
			return nil
		}
		key = k
	}
	if err := r.client.RemoveObject(ctx, r.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		observability.ObserveBlob("minio", "remove", "error")
		log.Error().Err(err).Str("key", key).Msg("remote delete failed")
		return fmt.Errorf("minio delete %s: %w", key, err)
	}
	observability.ObserveBlob("minio", "remove", "ok")
	return nil
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// ObjectKey recovers the object identifier from a stored URL: the path
// after the bucket segment, with an optional v<digits> version segment
// skipped and anything from the first extension dot dropped.
func ObjectKey(bucket, rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, s := range segs {
		if s != bucket || i+1 >= len(segs) {
			continue
		}
		rest := segs[i+1:]
		if versionSegment.MatchString(rest[0]) {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return "", false
		}
		key := strings.Join(rest, "/")
		if dot := strings.Index(key, "."); dot >= 0 {
			key = key[:dot]
		}
		if key == "" {
			return "", false
		}
		return key, true
	}
	return "", false
}
