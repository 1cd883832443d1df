package services

import (
	"context"
	"io"
	"mgMessenger/internal/enums"
	"path/filepath"
	"strings"
	"testing"
)

type capturingFileManager struct {
	fileName, contentType, bucketName string
	size                              int64
}

func (m *capturingFileManager) UploadFile(ctx context.Context, fileName string, file io.Reader, fileSize int64, contentType string, bucketName string) (string, error) {
	m.fileName, m.contentType, m.bucketName, m.size = fileName, contentType, bucketName, fileSize
	return "http://files/" + bucketName + "/" + fileName, nil
}

func TestUploadAttachment(t *testing.T) {
	manager := &capturingFileManager{}
	service := NewFileManagerService(manager)

	url, mime, err := service.UploadAttachment(context.Background(), "Quarterly Report.PDF", strings.NewReader("pdf"), 3, "")
	if err != nil {
		t.Fatalf("UploadAttachment: %v", err)
	}

	if manager.bucketName != enums.FILE_BUCKET_MESSAGE_ATTACHMENTS {
		t.Errorf("bucket: got %q", manager.bucketName)
	}
	if filepath.Ext(manager.fileName) != ".PDF" || strings.Contains(manager.fileName, "Quarterly") {
		t.Errorf("stored name %q should be random with the original extension", manager.fileName)
	}
	if mime != "application/octet-stream" || manager.contentType != mime {
		t.Errorf("mime: got %q / %q", mime, manager.contentType)
	}
	if !strings.HasSuffix(url, manager.fileName) || manager.size != 3 {
		t.Errorf("url %q size %d", url, manager.size)
	}
}
