package timingcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vk/premerge/internal/ctxlog"
	"github.com/vk/premerge/internal/fsutil"
)

const (
	// TimingFileName is the file lit writes next to each test directory.
	TimingFileName = ".lit_test_times.txt"

	// keyPrefix namespaces the timing files within the bucket.
	keyPrefix = "lit_timing/"

	// transferParallelism bounds the concurrent object transfers.
	transferParallelism = 100
)

// Options configures the connection to the cache bucket.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	UseSSL    bool
}

// objectStore is the slice of the minio client the cache uses. Narrowed for
// testability.
type objectStore interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	FGetObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// Cache transfers timing files to and from one bucket.
type Cache struct {
	store       objectStore
	bucket      string
	parallelism int
}

// New builds a Cache from the given options.
func New(opts Options) (*Cache, error) {
	if strings.TrimSpace(opts.Endpoint) == "" {
		return nil, fmt.Errorf("timingcache: endpoint is required")
	}
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("timingcache: bucket is required")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("timingcache: init client: %w", err)
	}

	return &Cache{
		store:       client,
		bucket:      opts.Bucket,
		parallelism: transferParallelism,
	}, nil
}

// Upload finds every timing file under root and uploads it. Individual
// upload failures are logged and do not abort the remaining transfers.
func (c *Cache) Upload(ctx context.Context, root string) error {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByName(root, TimingFileName)
	if err != nil {
		return fmt.Errorf("timingcache: discover timing files: %w", err)
	}
	logger.Debug("Discovered timing files.", "count", len(files))

	c.forEach(files, func(rel string) {
		local := filepath.Join(root, filepath.FromSlash(rel))
		if _, err := os.Stat(local); err != nil {
			// The file can vanish between discovery and upload.
			return
		}
		if _, err := c.store.FPutObject(ctx, c.bucket, keyPrefix+rel, local, minio.PutObjectOptions{
			ContentType: "text/plain",
		}); err != nil {
			logger.Warn("Failed to upload timing file.", "file", rel, "error", err)
		}
	})

	logger.Info("Done uploading timing files.", "count", len(files))
	return nil
}

// Download fetches every cached timing file into root, creating parent
// directories as needed. A listing failure is logged and swallowed; a cold
// cache must never fail the build.
func (c *Cache) Download(ctx context.Context, root string) error {
	logger := ctxlog.FromContext(ctx)

	var keys []string
	for object := range c.store.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    keyPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			logger.Warn("Failed to list timing files in bucket.", "error", object.Err)
			return nil
		}
		if object.Key != "" {
			keys = append(keys, object.Key)
		}
	}
	logger.Debug("Listed cached timing files.", "count", len(keys))

	c.forEach(keys, func(key string) {
		rel := strings.TrimPrefix(key, keyPrefix)
		local := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
			logger.Warn("Failed to create directory for timing file.", "file", rel, "error", err)
			return
		}
		if err := c.store.FGetObject(ctx, c.bucket, key, local, minio.GetObjectOptions{}); err != nil {
			logger.Warn("Failed to download timing file.", "file", rel, "error", err)
		}
	})

	logger.Info("Done downloading timing files.", "count", len(keys))
	return nil
}

// forEach runs fn over items on a bounded worker pool and waits for all
// workers to drain.
func (c *Cache) forEach(items []string, fn func(item string)) {
	workers := c.parallelism
	if workers > len(items) {
		workers = len(items)
	}
	if workers == 0 {
		return
	}

	work := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range work {
				fn(item)
			}
		}()
	}
	for _, item := range items {
		work <- item
	}
	close(work)
	wg.Wait()
}
