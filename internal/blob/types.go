// Package blob is the entry point to blob storage. Callers depend on Store
// and the constructors here; backends live under internal/infra/blob.
package blob

import "staffdir/internal/blob/core"

type (
	// Driver identifies a blob backend.
	Driver = core.Driver
	// PutOptions configures a blob write.
	PutOptions = core.PutOptions
	// Info describes stored blob metadata.
	Info = core.Info
	// Store is the interface implemented by every backend.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory driver.
	DriverMemory = core.DriverMemory
)

var (
	// ErrExists is returned by Put for a taken key.
	ErrExists = core.ErrExists
	// ErrNotExist is returned by Get for a missing key.
	ErrNotExist = core.ErrNotExist
)
