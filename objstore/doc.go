// Package objstore abstracts access to the object store holding study
// assets: resolving storage paths to temporary access URLs, uploading
// derived assets, and fetching asset bytes.
//
// Signed-URL mechanics belong to the concrete store; the pipeline only needs
// the three operations of the Resolver interface. FS is a filesystem-backed
// implementation for local use and tests.
package objstore
