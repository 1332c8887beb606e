// Package indexer posts flattened segment records to a Solr-style search
// service in buffered batches.
package indexer
