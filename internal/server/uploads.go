package server

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 5 << 20

// saveUpload stores one uploaded image under the uploads directory with a
// timestamped name and returns its public path. The original filename is
// reduced to its base to keep traversal sequences out of the target path.
func (s *Server) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxUploadBytes {
		return "", newValidationError("image", "file_too_large", "file exceeds 5MB")
	}

	name := filepath.Base(file.Filename)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", newValidationError("image", "invalid_filename", "invalid file name")
	}

	if err := os.MkdirAll(s.cfg.UploadsDir, 0o755); err != nil {
		return "", err
	}

	stored := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), name)
	dst := filepath.Join(s.cfg.UploadsDir, stored)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return "/uploads/" + stored, nil
}
