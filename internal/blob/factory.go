package blob

import (
	"context"
	"fmt"
	"os"
)

// Open selects a Store from the environment.
//
//	STAFFDIR_BLOB_DRIVER: fs|s3|memory (default fs)
//	STAFFDIR_BLOB_FS_ROOT: root directory when driver=fs (default ./blobdata)
//
// S3 variables are documented in internal/infra/blob/s3.
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("STAFFDIR_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("STAFFDIR_BLOB_FS_ROOT"))
	case DriverS3:
		return OpenS3FromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
