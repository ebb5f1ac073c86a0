package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"raone/internal/model"
)

// Cloudinary implements ImageStore against the Cloudinary upload API.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds a client from a cloudinary:// URL.
func NewCloudinary(url string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

// Upload stores the file under the given folder and returns its reference.
func (s *Cloudinary) Upload(ctx context.Context, file io.Reader, folder string) (model.Image, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return model.Image{}, fmt.Errorf("upload image: %w", err)
	}
	return model.Image{PublicID: resp.PublicID, URL: resp.SecureURL}, nil
}

// Destroy removes an asset by its public id.
func (s *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroy image %s: %w", publicID, err)
	}
	if resp.Result != "ok" {
		return fmt.Errorf("destroy image %s: %s", publicID, resp.Result)
	}
	return nil
}
