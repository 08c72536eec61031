package storage

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Resolver 将存储 key 转换为公开访问地址
type Resolver interface {
	PublicURL(key string) (string, error)
}

// IsAbsoluteURL 判断是否为 http(s) 绝对地址
func IsAbsoluteURL(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ResolveImage 解析图片引用：绝对地址原样返回，否则交给 resolver；失败时返回原值
func ResolveImage(r Resolver, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || IsAbsoluteURL(ref) || r == nil {
		return ref
	}
	resolved, err := r.PublicURL(ref)
	if err != nil {
		logger.Warnw("storage_public_url_failed", "key", ref, "error", err)
		return ref
	}
	return resolved
}

// NewResolver 按配置创建 resolver
func NewResolver(cfg config.StorageConfig) (Resolver, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case constants.StorageDriverCloudinary:
		return NewCloudinaryResolver(cfg.Cloudinary)
	case "", constants.StorageDriverBaseURL:
		return NewBaseURLResolver(cfg.PublicBaseURL, cfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// BaseURLResolver 对象存储公开地址：{base}/storage/v1/object/public/{bucket}/{key}
type BaseURLResolver struct {
	baseURL string
	bucket  string
}

// NewBaseURLResolver 创建公开地址 resolver
func NewBaseURLResolver(baseURL, bucket string) *BaseURLResolver {
	return &BaseURLResolver{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		bucket:  strings.Trim(strings.TrimSpace(bucket), "/"),
	}
}

// PublicURL 生成公开地址
func (r *BaseURLResolver) PublicURL(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", errors.New("storage key is empty")
	}
	escaped := make([]string, 0)
	for _, segment := range strings.Split(key, "/") {
		escaped = append(escaped, url.PathEscape(segment))
	}
	objectPath := path.Join("storage/v1/object/public", r.bucket, strings.Join(escaped, "/"))
	if r.baseURL == "" {
		return "/" + objectPath, nil
	}
	return r.baseURL + "/" + objectPath, nil
}

// CloudinaryResolver Cloudinary 图片分发地址
type CloudinaryResolver struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryResolver 创建 Cloudinary resolver
func NewCloudinaryResolver(cfg config.CloudinaryStorageConfig) (*CloudinaryResolver, error) {
	if strings.TrimSpace(cfg.CloudName) == "" {
		return nil, errors.New("cloudinary cloud_name is empty")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	cld.Config.URL.Secure = true
	cld.Config.URL.Analytics = false
	return &CloudinaryResolver{cld: cld, folder: strings.Trim(strings.TrimSpace(cfg.Folder), "/")}, nil
}

// PublicURL 生成分发地址；key 未带目录时补上配置目录
func (r *CloudinaryResolver) PublicURL(key string) (string, error) {
	publicID := strings.TrimLeft(strings.TrimSpace(key), "/")
	if publicID == "" {
		return "", errors.New("storage key is empty")
	}
	if r.folder != "" && !strings.Contains(publicID, "/") {
		publicID = r.folder + "/" + publicID
	}
	asset, err := r.cld.Image(publicID)
	if err != nil {
		return "", err
	}
	return asset.String()
}
