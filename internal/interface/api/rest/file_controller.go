package rest

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/application/services"
	domain "file-manager-api/internal/domain/file"
	"file-manager-api/internal/interface/api/rest/dto/file"
	"file-manager-api/internal/interface/api/rest/middleware"
	"file-manager-api/internal/interface/api/rest/validator"
)

// room for multipart boundaries and part headers on top of the file itself
const multipartOverhead = int64(1 << 20)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
	maxUpload   int64
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	authMW gin.HandlerFunc,
	maxUpload int64,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
		maxUpload:   maxUpload,
	}

	r.GET(RouteDashboard, authMW, fc.ListFilesHandler)
	r.POST(RouteUpload, authMW, fc.UploadFileHandler)
	r.GET(RouteDownload, authMW, fc.DownloadFileHandler)
	r.DELETE(RouteDeleteFile, authMW, fc.DeleteFileHandler)

	return fc
}

func (fc *FileController) ListFilesHandler(c *gin.Context) {
	files, err := fc.fileService.ListFiles(c.Request.Context(), c.GetString(middleware.CtxIdentityID))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to fetch files"},
		)
		fc.logger.Error("ListFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, file.FilesResponse{
		Files: file.ToResponseFiles(files),
	})
}

func (fc *FileController) UploadFileHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, fc.maxUpload+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if fh.Size > fc.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fc.fileService.Upload(c.Request.Context(), c.GetString(middleware.CtxIdentityID), fh)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to upload file"},
		)
		fc.logger.Error("Upload() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, file.FileResponse{
		Message: "file uploaded successfully",
		File:    file.ToResponseFile(*f),
	})
}

func (fc *FileController) DownloadFileHandler(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	dl, err := fc.fileService.Download(c.Request.Context(), c.GetString(middleware.CtxIdentityID), domain.ID(id))
	if err != nil {
		fc.fileError(c, err, "failed to download file", "Download() error")
		return
	}
	defer dl.Body.Close()

	contentType := dl.File.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, dl.Size, contentType, dl.Body, map[string]string{
		"Content-Disposition": contentDisposition(dl.File.OriginalFilename),
	})
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	if err = fc.fileService.Delete(c.Request.Context(), c.GetString(middleware.CtxIdentityID), domain.ID(id)); err != nil {
		fc.fileError(c, err, "failed to delete file", "Delete() error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted successfully"})
}

func (fc *FileController) fileError(c *gin.Context, err error, internalMsg, logMsg string) {
	switch {
	case errors.Is(err, services.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	case errors.Is(err, services.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, services.ErrFileMissingOnServer):
		fc.logger.Warn("stored file missing", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found on server"})
	default:
		fc.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}

func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return `attachment; filename="file"`
}
