package file

import (
	"file-manager-api/internal/domain/file"
)

func ToResponseFile(f file.File) File {
	return File{
		FileID:       int64(f.FileID),
		UserID:       int64(f.UserID),
		Filename:     f.StoredFilename,
		OriginalName: f.OriginalFilename,
		FileSize:     f.SizeBytes,
		MimeType:     f.MimeType,
		UploadedAt:   f.UploadedAt,
	}
}

func ToResponseFiles(fs file.Files) Files {
	out := make(Files, len(fs))
	for idx, f := range fs {
		out[idx] = ToResponseFile(*f)
	}

	return out
}
