// Package domain contains the core types of the ingestion pipeline:
// normalised content blocks, remote source snapshots, the sync ledger
// and the error taxonomy shared by all adapters and services.
package domain
