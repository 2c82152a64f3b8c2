package file

import (
	"time"
)

type (
	File struct {
		FileID       int64
		UserID       int64
		Filename     string
		OriginalName string
		FilePath     string
		FileSize     int64
		MimeType     string
		UploadedAt   time.Time
	}
	Files []*File
)
