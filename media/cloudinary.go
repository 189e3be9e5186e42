package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
)

// DefaultFolder is where new images are placed on Cloudinary.
const DefaultFolder = "uploads"

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type CloudinaryUploader struct {
	api    cloudinaryAPI
	folder string
}

// NewCloudinaryUploader builds the client from a cloudinary:// URL, or from the three
// discrete credentials when the URL is empty.
func NewCloudinaryUploader(url, cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if url != "" {
		cld, err = cloudinary.NewFromURL(url)
	} else {
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary init error: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryUploader{api: &cld.Upload, folder: DefaultFolder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file File) (*Asset, error) {
	resp, err := u.api.Upload(ctx, file.Body, uploader.UploadParams{Folder: u.folder})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp == nil || resp.SecureURL == "" {
		return nil, errors.New("cloudinary upload returned no url")
	}
	return &Asset{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (u *CloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if _, err := u.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	return nil
}

// PublicIDFromURL takes the path after "upload/<version>/" up to the first dot, e.g.
// https://res.cloudinary.com/demo/image/upload/v171/uploads/logo.png -> uploads/logo
func (u *CloudinaryUploader) PublicIDFromURL(url string) string {
	parts := strings.Split(url, "/")
	idx := -1
	for i, p := range parts {
		if p == "upload" {
			idx = i
			break
		}
	}
	if idx < 0 || idx+2 >= len(parts) {
		return ""
	}
	id := strings.Join(parts[idx+2:], "/")
	if dot := strings.Index(id, "."); dot >= 0 {
		id = id[:dot]
	}
	return id
}
