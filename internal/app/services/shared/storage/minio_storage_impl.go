package storage

import (
	"bytes"
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/pkg/exceptions"
	"context"

	"github.com/minio/minio-go/v7"
)

type minioSignatureStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioSignatureStorage(minioClient *minio.Client, bucketName string) contracts.SignatureStorage {
	return &minioSignatureStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioSignatureStorage) StoreSignature(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	_, err := m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return objectName, nil
}
