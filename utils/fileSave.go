package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SaveImageWithThumb decodes an uploaded image, writes the original and a
// 300px-wide thumbnail under dir, and returns the public path of the
// original. The listing row must not be written until this succeeds.
func SaveImageWithThumb(file multipart.File, dir, publicPrefix string) (string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	fileName := GetUUID() + ".jpg"

	originalPath := filepath.Join(dir, fileName)
	thumbDir := filepath.Join(dir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, originalPath); err != nil {
		return "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return publicPrefix + "/" + fileName, nil
}
