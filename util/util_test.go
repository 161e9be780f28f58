package util

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"sync"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("reader@bookbazaar.com") {
		t.Errorf("Expected valid email")
	}
	if ValidateEmail("not-an-email") {
		t.Errorf("Expected invalid email")
	}
}

func TestGenISBN(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		isbn, err := GenISBN()
		if err != nil {
			t.Fatalf("Failed to generate ISBN: %v", err)
		}
		if !strings.HasPrefix(isbn, "ISBN-") {
			t.Errorf("Expected ISBN- prefix, got %s", isbn)
		}
		if len(isbn) != len("ISBN-")+10 {
			t.Errorf("Expected 10 digits, got %s", isbn)
		}
		for _, r := range isbn[len("ISBN-"):] {
			if r < '0' || r > '9' {
				t.Errorf("Expected only digits, got %s", isbn)
				break
			}
		}
		seen[isbn] = true
	}
	if len(seen) < 2 {
		t.Errorf("Expected different ISBNs across runs")
	}
}

// createTestImage encodes a small gradient image in the given format.
func createTestImage(extension string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch extension {
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "png":
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func TestImageToWebp(t *testing.T) {
	formats := []string{"jpg", "jpeg", "png"}

	for _, format := range formats {
		t.Run(fmt.Sprintf("Test %s to WebP", format), func(t *testing.T) {
			src, err := createTestImage(format)
			if err != nil {
				t.Fatalf("Failed to create %s test image: %v", format, err)
			}

			// 75 is the quality of the WebP image
			out, err := ImageToWebp(src, 75)
			if err != nil {
				t.Fatalf("Failed to convert %s to webp: %v", format, err)
			}
			if len(out) == 0 {
				t.Error("Expected webp output, got empty slice")
			}
		})
	}
}

func TestImageToWebpRejectsGarbage(t *testing.T) {
	if _, err := ImageToWebp([]byte("definitely not an image"), 75); err == nil {
		t.Error("Expected error for non-image input")
	}
}

func TestImageToWebpConcurrent(t *testing.T) {
	waitGroup := sync.WaitGroup{}

	waitGroup.Add(10)
	for i := 1; i <= 10; i++ {
		src, err := createTestImage("jpg")
		if err != nil {
			t.Fatalf("Failed to create jpg test image: %v", err)
		}

		go func() {
			defer waitGroup.Done()
			out, err := ImageToWebp(src, 75)
			if err != nil {
				t.Errorf("Failed to convert image: %v", err)
				return
			}
			if len(out) == 0 {
				t.Error("Expected webp output, got empty slice")
			}
		}()
	}

	waitGroup.Wait()
}
