package file

import "time"

// File never carries the storage path.
type (
	File struct {
		FileID       int64     `json:"fileid"`
		UserID       int64     `json:"userid"`
		Filename     string    `json:"filename"`
		OriginalName string    `json:"originalname"`
		FileSize     int64     `json:"filesize"`
		MimeType     string    `json:"mimetype"`
		UploadedAt   time.Time `json:"uploaded_at"`
	}
	Files []File

	FileResponse struct {
		Message string `json:"message"`
		File    File   `json:"file"`
	}
	FilesResponse struct {
		Files Files `json:"files"`
	}
)
