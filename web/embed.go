// Package web 控制台前端页面
//
// 接口以外的 GET 请求由前端处理：带扩展名的静态资源按文件返回，
// 其余路径都返回首页，由前端路由渲染对应的控制台页面。
package web

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pu-ac-cn/geo-console/pkg/response"
)

//go:embed dist/*
var embeddedFS embed.FS

// StaticMode 前端文件来源
type StaticMode string

const (
	// ModeEmbed 使用编译时嵌入的前端
	ModeEmbed StaticMode = "embed"
	// ModeDisk 读取磁盘目录，前端重新构建后无需重启
	ModeDisk StaticMode = "disk"
	// ModeOff 不提供前端页面，只启用接口
	ModeOff StaticMode = "off"
)

// 按文件返回的静态资源扩展名
var assetExt = map[string]bool{
	".js": true, ".mjs": true, ".css": true, ".map": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true, ".webp": true, ".ico": true,
	".woff": true, ".woff2": true, ".ttf": true,
	".json": true, ".txt": true, ".html": true,
}

// StaticConfig 前端页面配置
type StaticConfig struct {
	Mode      StaticMode
	DiskPath  string   // ModeDisk 时的目录
	IndexFile string   // 首页文件
	APIPrefix []string // 这些前缀下未匹配的请求返回接口 404
}

// DefaultConfig 返回默认配置
func DefaultConfig() *StaticConfig {
	return &StaticConfig{
		Mode:      ModeEmbed,
		DiskPath:  "./web/dist",
		IndexFile: "index.html",
		APIPrefix: []string{"/api/", "/health", "/metrics"},
	}
}

// StaticHandler 前端页面处理器
type StaticHandler struct {
	config *StaticConfig
	files  fs.FS
}

// NewStaticHandler 创建前端页面处理器，嵌入目录不可用时读取磁盘
func NewStaticHandler(config *StaticConfig) *StaticHandler {
	if config == nil {
		config = DefaultConfig()
	}
	h := &StaticHandler{config: config, files: os.DirFS(config.DiskPath)}
	if config.Mode != ModeDisk {
		if sub, err := fs.Sub(embeddedFS, "dist"); err == nil {
			h.files = sub
		}
	}
	return h
}

// IsAPIPath 路径是否属于接口
func (h *StaticHandler) IsAPIPath(p string) bool {
	for _, prefix := range h.config.APIPrefix {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// SetupRoutes 把未匹配的路由交给前端
func (h *StaticHandler) SetupRoutes(router *gin.Engine) {
	router.NoRoute(h.serve)
}

func (h *StaticHandler) serve(c *gin.Context) {
	p := c.Request.URL.Path
	if h.IsAPIPath(p) {
		response.ErrorWithMsg(c, response.CodeRouteNotFound, "接口不存在")
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusMethodNotAllowed, response.Response{
			Code: response.CodeInvalidRequest,
			Msg:  "方法不允许",
		})
		return
	}

	name := strings.TrimPrefix(path.Clean(p), "/")
	if name == h.config.IndexFile || !assetExt[strings.ToLower(path.Ext(name))] {
		h.serveIndex(c)
		return
	}
	// 资源缺失时不回退首页，避免浏览器把 HTML 当脚本解析
	if info, err := fs.Stat(h.files, name); err != nil || info.IsDir() {
		response.ErrorWithMsg(c, response.CodeRouteNotFound, "文件不存在")
		return
	}
	http.ServeFileFS(c.Writer, c.Request, h.files, name)
}

// serveIndex 直接写出首页，http.ServeFileFS 会把 index.html 重定向到目录
func (h *StaticHandler) serveIndex(c *gin.Context) {
	data, err := fs.ReadFile(h.files, h.config.IndexFile)
	if err != nil {
		response.ErrorWithMsg(c, response.CodeRouteNotFound, "前端页面不存在")
		return
	}
	var modTime time.Time
	if info, err := fs.Stat(h.files, h.config.IndexFile); err == nil {
		modTime = info.ModTime()
	}
	http.ServeContent(c.Writer, c.Request, h.config.IndexFile, modTime, bytes.NewReader(data))
}
