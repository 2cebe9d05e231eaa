// Package files implements authenticated static file serving.
//
// Every request path is resolved under a single root. Resolution rejects
// parent segments, so traversal attempts are answered exactly like missing
// files (404).
//
// # Backends
//
//   - Local: a directory on disk, accessed through os.Root.
//   - Bucket: a key prefix of an S3/MinIO bucket; directories are key prefixes.
//
// Both create their root on Ensure (MkdirAll or MakeBucket) and return
// ErrFilesystem when that is impossible.
//
// # Responses
//
//   - File: 200 with Content-Type from the extension, Content-Length and
//     Last-Modified, or 304 when If-Modified-Since is not older.
//   - Directory without trailing slash: 301 to the slash form.
//   - Directory: index.html or index.htm, else an HTML listing.
//   - Missing or outside the root: 404.
//   - Methods other than GET and HEAD: 405.
package files
