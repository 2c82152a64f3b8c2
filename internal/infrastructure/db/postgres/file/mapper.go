package file

import (
	domain "file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/profile"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		FileID:           domain.ID(model.FileID),
		UserID:           profile.ID(model.UserID),
		StoredFilename:   model.Filename,
		OriginalFilename: model.OriginalName,
		StoragePath:      model.FilePath,
		SizeBytes:        model.FileSize,
		MimeType:         model.MimeType,
		UploadedAt:       model.UploadedAt,
	}

	return f
}

func fromDBModels(models Files) domain.Files {
	fs := make(domain.Files, len(models))
	for idx, f := range models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
