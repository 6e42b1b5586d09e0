package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"communityconnect/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// ErrUploadFailed marks failures of the external media service so handlers
// can report them distinctly from persistence errors.
var ErrUploadFailed = errors.New("media upload failed")

// Gateway wraps the Cloudinary client. The rest of the app only sees media
// descriptors; folders and transformations live here.
type Gateway struct {
	cld *cloudinary.Cloudinary
}

func New(cloudName, apiKey, apiSecret string) (*Gateway, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Gateway{cld: cld}, nil
}

// allowedMIMETypes maps every accepted upload MIME type to its media kind.
var allowedMIMETypes = map[string]string{
	"image/jpeg": models.MediaImage,
	"image/jpg":  models.MediaImage,
	"image/png":  models.MediaImage,
	"image/gif":  models.MediaImage,
	"image/webp": models.MediaImage,

	"video/mp4":        models.MediaVideo,
	"video/quicktime":  models.MediaVideo,
	"video/x-msvideo":  models.MediaVideo,
	"video/x-matroska": models.MediaVideo,
	"video/webm":       models.MediaVideo,

	"application/pdf":    models.MediaDocument,
	"application/msword": models.MediaDocument,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": models.MediaDocument,
	"text/plain":                   models.MediaDocument,
	"application/zip":              models.MediaDocument,
	"application/x-rar-compressed": models.MediaDocument,
}

// KindForMIME returns the media kind for a MIME type, or false when the
// type is not on the allowlist.
func KindForMIME(mimeType string) (string, bool) {
	kind, ok := allowedMIMETypes[mimeType]
	return kind, ok
}

// allowedAvatarMIMETypes is narrower than the post allowlist: avatars go
// through a face-crop transformation, so only still-image formats are
// accepted.
var allowedAvatarMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// AvatarMIMEAllowed reports whether a MIME type may be used for a profile
// picture.
func AvatarMIMEAllowed(mimeType string) bool {
	return allowedAvatarMIMETypes[mimeType]
}

// uploadParamsForKind picks the Cloudinary folder, resource type and
// normalization transformation for a media kind.
func uploadParamsForKind(kind, publicID string) uploader.UploadParams {
	switch kind {
	case models.MediaVideo:
		return uploader.UploadParams{
			Folder:         "community_connect/posts/videos",
			PublicID:       publicID,
			ResourceType:   "video",
			Transformation: "c_limit,w_1280,h_720,q_auto",
		}
	case models.MediaDocument:
		return uploader.UploadParams{
			Folder:       "community_connect/posts/files",
			PublicID:     publicID,
			ResourceType: "raw",
		}
	default:
		return uploader.UploadParams{
			Folder:         "community_connect/posts/images",
			PublicID:       publicID,
			Transformation: "c_limit,w_1200,h_1200,q_auto,f_auto",
		}
	}
}

// UploadPostMedia streams one file to Cloudinary and returns the descriptor
// to attach to the owning post or message.
func (g *Gateway) UploadPostMedia(ctx context.Context, file io.Reader, mimeType, originalName string, size int64) (models.Media, error) {
	kind, ok := KindForMIME(mimeType)
	if !ok {
		return models.Media{}, fmt.Errorf("file type %s not allowed", mimeType)
	}

	params := uploadParamsForKind(kind, uuid.NewString())
	result, err := g.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return models.Media{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return models.Media{
		Type:         kind,
		URL:          result.SecureURL,
		PublicID:     result.PublicID,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         size,
	}, nil
}

// UploadAvatar stores a profile picture, face-cropped to 400x400. The
// public ID is the owner's user ID so re-uploads replace the old avatar.
func (g *Gateway) UploadAvatar(ctx context.Context, file io.Reader, ownerID string) (string, error) {
	result, err := g.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         "community_connect/avatars",
		PublicID:       ownerID,
		Transformation: "c_fill,g_face,w_400,h_400,q_auto",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return result.SecureURL, nil
}
