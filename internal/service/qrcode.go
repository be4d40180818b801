package service

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

const (
	badgeDir  = "qrcode"
	badgeSize = 512
	codeSize  = 416
)

// EmployeeBadge writes a QR badge for an employee and returns its path under
// the statics tree. The encoded payload is what the check-in terminal scans.
func EmployeeBadge(employeeID int, login string) (string, error) {
	targetPath := filepath.Join(baseDir, badgeDir)
	if _, err := os.Stat(targetPath); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(targetPath, os.ModePerm); err != nil {
			return "", err
		}
	}

	content := fmt.Sprintf("hrms:employee:%d:%s", employeeID, login)

	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", err
	}
	code := qr.Image(codeSize)

	// Center the code on a white card so the printed badge keeps a quiet zone.
	badge := image.NewRGBA(image.Rect(0, 0, badgeSize, badgeSize))
	draw.Draw(badge, badge.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	margin := (badgeSize - codeSize) / 2
	target := image.Rect(margin, margin, margin+codeSize, margin+codeSize)
	draw.NearestNeighbor.Scale(badge, target, code, code.Bounds(), draw.Src, nil)

	path := filepath.Join(targetPath, fmt.Sprintf("employee-%d.png", employeeID))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err = png.Encode(file, badge); err != nil {
		return "", err
	}

	return path, nil
}
