package services

import (
	"context"
	"io"
	"mgMessenger/internal/enums"
	"mgMessenger/internal/interfaces"
	"path/filepath"

	"github.com/google/uuid"
)

type FileManagerService struct {
	fileManager interfaces.FileManager
}

func NewFileManagerService(fileManager interfaces.FileManager) *FileManagerService {
	return &FileManagerService{
		fileManager: fileManager,
	}
}

// UploadAttachment stores file under a random name that keeps the original
// extension and returns its public url and content type.
func (fs *FileManagerService) UploadAttachment(ctx context.Context, originalName string, file io.Reader, fileSize int64, contentType string) (string, string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	fileName := uuid.NewString() + filepath.Ext(originalName)
	url, err := fs.fileManager.UploadFile(ctx, fileName, file, fileSize, contentType, enums.FILE_BUCKET_MESSAGE_ATTACHMENTS)
	if err != nil {
		return "", "", err
	}
	return url, contentType, nil
}
