// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging normalizes uploaded profile pictures: decode, downscale
// to a bounded square, re-encode as JPEG. Images already within bounds are
// re-encoded but never upscaled.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/gif" // register decoder
	_ "image/png" // register decoder

	"golang.org/x/image/draw"
)

const (
	// AvatarSize is the maximum edge length of a stored profile picture.
	AvatarSize = 256

	// jpegQuality balances avatar fidelity against storage size.
	jpegQuality = 85
)

// Avatar holds a processed profile picture ready for upload.
type Avatar struct {
	Data        []byte
	Width       int
	Height      int
	ContentType string // Always "image/jpeg"
}

// ProcessAvatar decodes an uploaded image (JPEG, PNG, or GIF), scales it
// down so its longest edge is at most AvatarSize, and encodes it as JPEG.
func ProcessAvatar(original []byte) (*Avatar, error) {
	src, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode failed: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("imaging: empty image")
	}

	// Scale the longest edge down to AvatarSize; never upscale.
	if w > AvatarSize || h > AvatarSize {
		if w >= h {
			h = h * AvatarSize / w
			w = AvatarSize
		} else {
			w = w * AvatarSize / h
			h = AvatarSize
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode failed: %w", err)
	}

	return &Avatar{
		Data:        buf.Bytes(),
		Width:       w,
		Height:      h,
		ContentType: "image/jpeg",
	}, nil
}
