package main

import (
	"fmt"
	"math"

	"github.com/h2non/bimg"
)

const (
	// Banner dimensions (16:9)
	bannerWidth  = 1536
	bannerHeight = 864
)

// NormalizeBanner converts a generated image to a PNG at the standard
// banner size. The image is scaled so it covers the banner box, then
// center-cropped, so arbitrary backend output sizes all land on the same
// dimensions without distortion.
func NormalizeBanner(buffer []byte) ([]byte, error) {
	size, err := bimg.NewImage(buffer).Size()
	if err != nil {
		return nil, fmt.Errorf("failed to get image dimensions: %v", err)
	}
	if size.Width == 0 || size.Height == 0 {
		return nil, fmt.Errorf("image has no dimensions")
	}

	widthRatio := float64(bannerWidth) / float64(size.Width)
	heightRatio := float64(bannerHeight) / float64(size.Height)
	resizeRatio := math.Max(widthRatio, heightRatio)
	resizedWidth := int(math.Ceil(float64(size.Width) * resizeRatio))
	resizedHeight := int(math.Ceil(float64(size.Height) * resizeRatio))

	banner, err := bimg.NewImage(buffer).Process(bimg.Options{
		Width:   resizedWidth,
		Height:  resizedHeight,
		Force:   true,
		Enlarge: true,
		Type:    bimg.PNG,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resize banner: %v", err)
	}

	resizedSize, err := bimg.NewImage(banner).Size()
	if err != nil {
		return nil, fmt.Errorf("failed to get resized dimensions: %v", err)
	}
	if resizedSize.Width == bannerWidth && resizedSize.Height == bannerHeight {
		return banner, nil
	}

	x := (resizedSize.Width - bannerWidth) / 2
	y := (resizedSize.Height - bannerHeight) / 2
	banner, err = bimg.NewImage(banner).Extract(y, x, bannerWidth, bannerHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to crop banner: %v", err)
	}

	return banner, nil
}
