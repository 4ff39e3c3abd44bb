package contracts

import "context"

type SignatureStorage interface {
	StoreSignature(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}
