package file

import (
	"time"

	"file-manager-api/internal/domain/profile"
)

type (
	ID   int64
	File struct {
		FileID           ID
		UserID           profile.ID
		StoredFilename   string
		OriginalFilename string
		StoragePath      string
		SizeBytes        int64
		MimeType         string
		UploadedAt       time.Time
	}
	Files []*File
)

// OwnedBy reports whether the record belongs to the given profile.
func (f *File) OwnedBy(userID profile.ID) bool { return f != nil && f.UserID == userID }
