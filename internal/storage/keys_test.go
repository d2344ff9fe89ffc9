package storage

import (
	"strings"
	"testing"
)

func TestNewImageKeyKeepsExtension(t *testing.T) {
	key, err := NewImageKey("photo.PNG")
	if err != nil {
		t.Fatalf("NewImageKey returned error: %v", err)
	}
	if !strings.HasPrefix(key, "images/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key shape: %s", key)
	}
}

func TestNewImageKeyIsUnique(t *testing.T) {
	first, err := NewImageKey("a.jpg")
	if err != nil {
		t.Fatalf("NewImageKey returned error: %v", err)
	}
	second, err := NewImageKey("a.jpg")
	if err != nil {
		t.Fatalf("NewImageKey returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct keys, got %s twice", first)
	}
}

func TestNewImageKeyRejectsOtherTypes(t *testing.T) {
	for _, name := range []string{"doc.pdf", "archive.zip", "noextension"} {
		if _, err := NewImageKey(name); err == nil {
			t.Fatalf("expected %s to be rejected", name)
		}
	}
}

func TestContentTypeForKey(t *testing.T) {
	if got := ContentTypeForKey("images/x.jpeg"); got != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %s", got)
	}
	if got := ContentTypeForKey("images/x.bin"); got != "application/octet-stream" {
		t.Fatalf("expected fallback content type, got %s", got)
	}
}
