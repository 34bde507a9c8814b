package imp

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// ReadFile reads an image from a file.
func ReadFile(filename string) (image.Image, error) {
	return imaging.Open(filename)
}

// ReadGrayFile reads an image from a file and converts it to grayscale.
func ReadGrayFile(filename string) (*image.Gray, error) {
	img, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ToGray(img), nil
}

// ReadBytes reads an image from raw bytes.
func ReadBytes(data []byte) (image.Image, error) {
	b := bytes.NewBuffer(data)
	return Read(b)
}

// Read reads an image from a io.Reader.
func Read(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

// Save creates a file and writes an image to it. Image format is decided based
// upon its extention ("png", "jpg", "tif", "bmp" or "gif"). quality only
// applies to JPEG.
func Save(filename string, img image.Image, quality int) error {
	if _, err := imaging.FormatFromFilename(filename); err != nil {
		return fmt.Errorf("can't save %v: %w", filename, err)
	}
	return imaging.Save(img, filename, imaging.JPEGQuality(quality))
}
