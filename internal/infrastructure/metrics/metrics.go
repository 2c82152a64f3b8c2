package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	AppRequests    = "app_requests_total"
	UserRegistered = "user_registered_total"
	UserDeleted    = "user_deleted_total"
	FileUploaded   = "file_uploaded_total"
	FileDeleted    = "file_deleted_total"
	UploadCleanup  = "upload_cleanup_total"
)

func NewCounter() *prometheus.CounterVec {
	return NewCounterWith(prometheus.DefaultRegisterer)
}

// NewCounterWith registers the counter on reg; tests pass a fresh registry.
func NewCounterWith(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filemanager",
			Name:      "general_counters",
		},
		[]string{"result"})
}
