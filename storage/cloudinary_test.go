package storage

import (
	"testing"

	"communityconnect/models"
)

func TestKindForMIME(t *testing.T) {
	tests := []struct {
		mimeType string
		wantKind string
		wantOK   bool
	}{
		{"image/jpeg", models.MediaImage, true},
		{"image/png", models.MediaImage, true},
		{"image/webp", models.MediaImage, true},
		{"video/mp4", models.MediaVideo, true},
		{"video/quicktime", models.MediaVideo, true},
		{"application/pdf", models.MediaDocument, true},
		{"text/plain", models.MediaDocument, true},
		{"application/zip", models.MediaDocument, true},
		{"application/x-msdownload", "", false},
		{"image/svg+xml", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		kind, ok := KindForMIME(tt.mimeType)
		if ok != tt.wantOK || kind != tt.wantKind {
			t.Errorf("KindForMIME(%q) = (%q, %v), want (%q, %v)",
				tt.mimeType, kind, ok, tt.wantKind, tt.wantOK)
		}
	}
}

func TestUploadParamsForKind(t *testing.T) {
	tests := []struct {
		kind         string
		wantFolder   string
		wantResource string
	}{
		{models.MediaImage, "community_connect/posts/images", ""},
		{models.MediaVideo, "community_connect/posts/videos", "video"},
		{models.MediaDocument, "community_connect/posts/files", "raw"},
	}

	for _, tt := range tests {
		params := uploadParamsForKind(tt.kind, "pub-id")
		if params.Folder != tt.wantFolder {
			t.Errorf("kind %s: folder = %q, want %q", tt.kind, params.Folder, tt.wantFolder)
		}
		if params.ResourceType != tt.wantResource {
			t.Errorf("kind %s: resource type = %q, want %q", tt.kind, params.ResourceType, tt.wantResource)
		}
		if params.PublicID != "pub-id" {
			t.Errorf("kind %s: public ID = %q, want pub-id", tt.kind, params.PublicID)
		}
	}
}

func TestAvatarMIMEAllowed(t *testing.T) {
	tests := []struct {
		mimeType string
		want     bool
	}{
		{"image/jpeg", true},
		{"image/jpg", true},
		{"image/png", true},
		{"image/gif", true},
		// post uploads accept these, avatars do not
		{"image/webp", false},
		{"application/pdf", false},
		{"application/zip", false},
		{"video/mp4", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := AvatarMIMEAllowed(tt.mimeType); got != tt.want {
			t.Errorf("AvatarMIMEAllowed(%q) = %v, want %v", tt.mimeType, got, tt.want)
		}
	}
}

func TestUploadParamsForKind_DocumentsSkipTransformation(t *testing.T) {
	params := uploadParamsForKind(models.MediaDocument, "x")
	if params.Transformation != "" {
		t.Errorf("documents should upload raw, got transformation %q", params.Transformation)
	}
}
