package router

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sustainably-yours/internal/core/config"
	"sustainably-yours/internal/transport/http/ez"
	"sustainably-yours/pkg/utils"
)

// UploadModule 商品图 / 商家 logo 上传，落本地盘，静态路由对外
type UploadModule struct {
	DB  *gorm.DB
	Cfg config.Upload
}

func (m UploadModule) MountAPI(_, authed *gin.RouterGroup) {
	ezAuth := ez.New(authed)

	ez.POSTFILES(ezAuth, "/uploads", "files", func(c *gin.Context, files []*multipart.FileHeader) (any, error) {
		if c.GetString("userId") == "" {
			return nil, ez.Unauthorized("unauthorized")
		}
		maxBytes := int64(m.Cfg.MaxFileMB) << 20
		urls := make([]string, 0, len(files))
		for _, f := range files {
			ext := strings.ToLower(filepath.Ext(f.Filename))
			if !m.extAllowed(ext) {
				return nil, ez.BadRequest("file type not allowed: " + ext)
			}
			if f.Size > maxBytes {
				return nil, ez.BadRequest("file too large: " + f.Filename)
			}
			name := utils.NewID() + ext
			if err := c.SaveUploadedFile(f, filepath.Join(m.Cfg.Dir, name)); err != nil {
				return nil, ez.Internal("save file failed", err)
			}
			urls = append(urls, m.Cfg.BaseURL+"/"+name)
		}
		return gin.H{"urls": urls}, nil
	})
}

func (m UploadModule) extAllowed(ext string) bool {
	for _, e := range m.Cfg.AllowedExt {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
