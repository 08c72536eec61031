package storage

import (
	"strings"
	"testing"

	"github.com/dujiao-next/tableorder/internal/config"
)

func TestResolveImageAbsoluteVerbatim(t *testing.T) {
	r := NewBaseURLResolver("https://cdn.example.com", "menu-images")
	ref := "HTTPS://images.example.com/burger.png"
	if got := ResolveImage(r, ref); got != ref {
		t.Fatalf("absolute url should be verbatim, got %s", got)
	}
	if got := ResolveImage(r, ""); got != "" {
		t.Fatalf("empty ref should stay empty, got %s", got)
	}
}

func TestBaseURLResolver(t *testing.T) {
	r := NewBaseURLResolver("https://cdn.example.com/", "/menu-images/")
	got := ResolveImage(r, "dishes/green curry.png")
	want := "https://cdn.example.com/storage/v1/object/public/menu-images/dishes/green%20curry.png"
	if got != want {
		t.Fatalf("want %s got %s", want, got)
	}
}

func TestNewResolverDrivers(t *testing.T) {
	r, err := NewResolver(config.StorageConfig{Driver: "", PublicBaseURL: "http://x", Bucket: "b"})
	if err != nil {
		t.Fatalf("default driver failed: %v", err)
	}
	if _, ok := r.(*BaseURLResolver); !ok {
		t.Fatalf("default driver should be base_url, got %T", r)
	}
	if _, err := NewResolver(config.StorageConfig{Driver: "s3"}); err == nil {
		t.Fatalf("unknown driver should fail")
	}
	if _, err := NewResolver(config.StorageConfig{Driver: "cloudinary"}); err == nil {
		t.Fatalf("cloudinary without cloud name should fail")
	}
}

func TestCloudinaryResolverFolder(t *testing.T) {
	r, err := NewCloudinaryResolver(config.CloudinaryStorageConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "menu",
	})
	if err != nil {
		t.Fatalf("new cloudinary resolver failed: %v", err)
	}
	got, err := r.PublicURL("burger")
	if err != nil {
		t.Fatalf("public url failed: %v", err)
	}
	if !strings.Contains(got, "res.cloudinary.com/demo/image/upload") || !strings.Contains(got, "menu/burger") {
		t.Fatalf("unexpected cloudinary url %s", got)
	}
}
