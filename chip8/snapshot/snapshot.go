package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/render"
	"github.com/valerio/go-chip8/chip8/video"
)

// Format selects how a frame is written to disk.
type Format string

const (
	FormatPNG  Format = "png"
	FormatText Format = "txt"
)

// ParseFormat validates a format name coming from the command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPNG, FormatText:
		return f, nil
	case "":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unknown snapshot format %q (want png or txt)", name)
}

// Take handles the snapshot key for interactive backends, writing a PNG to the working directory.
func Take(frame *video.FrameBuffer, scale int) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}

	if _, err := Save(frame, FormatPNG, "chip8_snapshot", "", scale); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// Save writes frame into directory (the working directory when empty) using a
// timestamped file name derived from baseName. Returns the written path.
func Save(frame *video.FrameBuffer, format Format, baseName, directory string, scale int) (string, error) {
	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	timestamp := time.Now().Format("20060102_150405")
	filePath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.%s", baseName, timestamp, format))

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", filePath, err)
	}

	if err := encode(file, frame, format, scale); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	slog.Info("Snapshot saved", "path", filePath, "format", string(format))
	return filePath, nil
}

func encode(w io.Writer, frame *video.FrameBuffer, format Format, scale int) error {
	switch format {
	case FormatText:
		if _, err := io.WriteString(w, strings.Join(render.RenderFrameToHalfBlocks(frame), "\n")+"\n"); err != nil {
			return fmt.Errorf("failed to write text snapshot: %w", err)
		}
	default:
		if err := png.Encode(w, Image(frame, scale)); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	}
	return nil
}

// Image converts the framebuffer to an RGBA image using the display palette,
// upscaled by scale with nearest-neighbour sampling so pixels stay sharp.
func Image(frame *video.FrameBuffer, scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))
	for i, pixel := range frame.ToSlice() {
		c := display.PixelColor(pixel)
		idx := i * display.RGBABytesPerPixel
		src.Pix[idx] = c.R
		src.Pix[idx+1] = c.G
		src.Pix[idx+2] = c.B
		src.Pix[idx+3] = c.A
	}

	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth*scale, video.FramebufferHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
