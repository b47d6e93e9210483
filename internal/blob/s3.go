package blob

import (
	"context"

	infraS3 "staffdir/internal/infra/blob/s3"
)

// S3Config configures an S3-backed Store.
type S3Config = infraS3.Config

// NewS3 returns an S3-backed Store.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) {
	s, err := infraS3.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// OpenS3FromEnv returns an S3-backed Store configured from the environment.
func OpenS3FromEnv(ctx context.Context) (Store, error) {
	s, err := infraS3.OpenFromEnv(ctx)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewMockS3ForTests returns an S3-backed Store served by an in-process fake.
func NewMockS3ForTests() Store { return infraS3.NewMockForTests() }
