// Package blobstore abstracts the flat-file backing storage of the
// tracking store.
//
// The [Store] interface covers exactly what the record codec and directory
// layout need: whole-file reads, atomic whole-file replacement, prefix
// listing, and deletion. Two implementations live in this package:
//
//   - [LocalStore]: production default on the local filesystem, with
//     temp-file-then-rename replacement
//   - [MemoryStore]: in-memory map for tests
//
// Object-store backends live in the s3 and minio subpackages.
package blobstore
