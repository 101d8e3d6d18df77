package uploader

import (
	"bytes"
	"context"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader stores images in Cloudinary and returns their public URLs.
type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

// NewCloudinary builds an uploader from a cloudinary:// URL.
func NewCloudinary(cloudinaryURL string) (*CloudinaryUploader, error) {
	client, err := cld.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: client}, nil
}

func (u *CloudinaryUploader) UploadBytes(ctx context.Context, folder, filename string, data []byte) (string, error) {
	reader := bytes.NewReader(data)

	res, err := u.cld.Upload.Upload(
		ctx,
		reader,
		uploader.UploadParams{
			Folder:       folder,
			PublicID:     filename,
			ResourceType: "image",
		},
	)
	if err != nil {
		return "", err
	}

	return res.SecureURL, nil
}
