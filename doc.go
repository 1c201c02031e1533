// Package mlflow implements a file-backed tracking store for logged models.
//
// A logged model is an immutable-identity, mutable-metadata record of a
// trained model: its name, type, lifecycle status, source run, write-once
// params, overwritable tags, and externally logged metrics. Records live as
// plain YAML files in a directory tree behind a pluggable blob store, so
// the same store runs on a local filesystem, in memory, on S3 or on MinIO.
//
// The package also ships a miniature query engine for searching models with
// SQL-like filter strings and ORDER BY clauses, evaluated by linear scan
// over the candidate experiments.
package mlflow
