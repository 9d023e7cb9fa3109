package handler

import (
	"Anatome/internal/pkg/response"
	"Anatome/internal/pkg/storage"
	"Anatome/internal/service"
	log "log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// maxPresignExpiry 临时访问链接的最长有效期
const maxPresignExpiry = 7 * 24 * time.Hour

type MediaHandler struct {
	storage storage.Storage
}

func NewMediaHandler(storage storage.Storage) *MediaHandler {
	return &MediaHandler{
		storage: storage,
	}
}

// PresignedURL 为私有托管对象签发临时访问链接
func (s *MediaHandler) PresignedURL(c *gin.Context) {
	fileURL := c.Query("url")
	if fileURL == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	expiry := time.Hour
	if raw := c.Query("expiry_sec"); raw != "" {
		sec, err := strconv.Atoi(raw)
		if err != nil || sec <= 0 || time.Duration(sec)*time.Second > maxPresignExpiry {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		expiry = time.Duration(sec) * time.Second
	}

	signed, err := s.storage.PresignedURL(c.Request.Context(), fileURL, expiry)
	if err != nil {
		log.ErrorContext(c, "failed to presign url", "url", fileURL, "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	response.Success(c, gin.H{
		"url":        signed,
		"expires_in": int(expiry.Seconds()),
	})
}

// StatFile 查询托管对象的元信息
func (s *MediaHandler) StatFile(c *gin.Context) {
	fileURL := c.Query("url")
	if fileURL == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	info, err := s.storage.StatFile(c.Request.Context(), fileURL)
	if err != nil {
		log.WarnContext(c, "failed to stat file", "url", fileURL, "err", err)
		response.Error(c, service.ErrFileNotExist)
		return
	}
	response.Success(c, info)
}

// ListFiles 按前缀列举托管对象
func (s *MediaHandler) ListFiles(c *gin.Context) {
	prefix := c.Query("prefix")

	files, err := s.storage.ListFiles(c.Request.Context(), prefix)
	if err != nil {
		log.ErrorContext(c, "failed to list files", "prefix", prefix, "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	response.Success(c, gin.H{
		"files": files,
		"count": len(files),
	})
}
