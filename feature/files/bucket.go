package files

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"secure-file-server/core/storage"

	"github.com/minio/minio-go/v7"
)

// Bucket serves objects under a key prefix of an S3/MinIO bucket.
// Directories are the common prefixes of object keys.
type Bucket struct {
	client storage.Client
	bucket string
	region string
	prefix string
}

// NewBucket creates a backend reading bucket under the root key prefix.
func NewBucket(client storage.Client, bucket, region, root string) *Bucket {
	return &Bucket{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(path.Clean("/"+root), "/"),
	}
}

func (b *Bucket) Root() string {
	return "s3://" + path.Join(b.bucket, b.prefix)
}

// Ensure creates the bucket if it does not exist.
func (b *Bucket) Ensure(ctx context.Context) (bool, error) {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return false, fmt.Errorf("%w: failed to check bucket %s: %w", ErrFilesystem, b.bucket, err)
	}
	if exists {
		return false, nil
	}
	if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{Region: b.region}); err != nil {
		return false, fmt.Errorf("%w: failed to create bucket %s: %w", ErrFilesystem, b.bucket, err)
	}
	return true, nil
}

func (b *Bucket) Stat(ctx context.Context, name string) (Entry, error) {
	if name == "" {
		return Entry{Name: ".", IsDir: true}, nil
	}

	info, err := b.client.StatObject(ctx, b.bucket, b.key(name), minio.StatObjectOptions{})
	if err == nil {
		return Entry{
			Name:    baseName(name),
			Path:    name,
			Size:    info.Size,
			ModTime: info.LastModified,
		}, nil
	}

	isDir, err := b.hasChildren(ctx, name)
	if err != nil {
		return Entry{}, err
	}
	if !isDir {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return Entry{Name: baseName(name), Path: name, IsDir: true}, nil
}

func (b *Bucket) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", name, err)
	}
	return obj, nil
}

func (b *Bucket) List(ctx context.Context, name string) ([]Entry, error) {
	prefix := b.dirPrefix(name)
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}

	var entries []Entry
	for obj := range b.client.ListObjects(ctx, b.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		rel := strings.TrimPrefix(obj.Key, prefix)
		if rel == "" {
			// Folder marker object for the directory itself
			continue
		}
		if dirName, ok := strings.CutSuffix(rel, "/"); ok {
			entries = append(entries, Entry{Name: dirName, Path: path.Join(name, dirName), IsDir: true})
			continue
		}
		entries = append(entries, Entry{
			Name:    rel,
			Path:    path.Join(name, rel),
			Size:    obj.Size,
			ModTime: obj.LastModified,
		})
	}
	return entries, nil
}

func (b *Bucket) hasChildren(ctx context.Context, name string) (bool, error) {
	// Cancel so the listing goroutine stops after the first object.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Prefix:  b.dirPrefix(name),
		MaxKeys: 1,
	}
	for obj := range b.client.ListObjects(ctx, b.bucket, opts) {
		if obj.Err != nil {
			return false, fmt.Errorf("failed to list %s: %w", opts.Prefix, obj.Err)
		}
		return true, nil
	}
	return false, nil
}

func (b *Bucket) key(name string) string {
	return path.Join(b.prefix, name)
}

func (b *Bucket) dirPrefix(name string) string {
	k := b.key(name)
	if k == "" {
		return ""
	}
	return k + "/"
}
