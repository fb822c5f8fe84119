// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"

	"linkshelf/internal/imaging"
	"linkshelf/internal/storage"
)

// maxUploadBytes limits raw profile picture uploads to 10 MiB.
const maxUploadBytes = 10 << 20

// uploadAvatar resizes an uploaded profile picture and stores it in the
// object bucket, returning the public URL. One key per user, so a new
// upload replaces the old picture.
func uploadAvatar(ctx context.Context, sc *storage.Client, userID uuid.UUID, file multipart.File) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(raw) > maxUploadBytes {
		return "", fmt.Errorf("upload exceeds %d bytes", maxUploadBytes)
	}

	avatar, err := imaging.ProcessAvatar(raw)
	if err != nil {
		return "", fmt.Errorf("process avatar: %w", err)
	}

	key := "avatars/" + userID.String() + ".jpg"
	if err := sc.Upload(ctx, key, avatar.ContentType, bytes.NewReader(avatar.Data), int64(len(avatar.Data))); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return sc.FileURL(key), nil
}
