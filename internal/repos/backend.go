package repos

import "localcart/internal/gateway"

// Backend is the sqlite + disk implementation of gateway.Gateway.
type Backend struct {
	*DocumentRepo
	*BlobRepo
}

var _ gateway.Gateway = (*Backend)(nil)

func NewBackend(docs *DocumentRepo, blobs *BlobRepo) *Backend {
	return &Backend{DocumentRepo: docs, BlobRepo: blobs}
}
