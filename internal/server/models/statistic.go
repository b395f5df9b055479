package models

import (
	"time"

	"github.com/google/uuid"
)

// StorageStatistic is one ledger row of storage usage for a bucket entry.
// The counters are optional.
type StorageStatistic struct {
	ID                uuid.UUID `json:"-"`
	Bucket            uuid.UUID `json:"bucket"`
	BucketEntry       string    `json:"bucketEntry"`
	User              string    `json:"user"`
	Timestamp         time.Time `json:"timestamp"`
	UploadBandwidth   *int64    `json:"uploadBandwidth,omitempty"`
	DownloadBandwidth *int64    `json:"downloadBandwidth,omitempty"`
	Storage           *int64    `json:"storage,omitempty"`
}
