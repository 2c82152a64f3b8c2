package mq

const (
	EventUserCreated  = "user.created"
	EventUserDeleted  = "user.deleted"
	EventFileUploaded = "file.uploaded"
	EventFileDeleted  = "file.deleted"
)

var RoutingKeys = []string{
	EventUserCreated,
	EventUserDeleted,
	EventFileUploaded,
	EventFileDeleted,
}

type (
	UserPayload struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	FilePayload struct {
		FileID           int64  `json:"file_id"`
		OriginalFilename string `json:"original_filename"`
		SizeBytes        int64  `json:"size_bytes"`
		MimeType         string `json:"mime_type"`
	}
)
