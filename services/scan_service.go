package services

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"strings"

	"github.com/Shwetank-F/daily-diet-scan/utils"
)

// ScanService runs the photograph-to-record pipeline: decode the uploaded
// image, OCR it, extract a nutrition record, and archive the shot.
type ScanService struct {
	recognizer TextRecognizer
}

func NewScanService(recognizer TextRecognizer) *ScanService {
	return &ScanService{recognizer: recognizer}
}

type ScanResult struct {
	Record  NutritionRecord `json:"record"`
	RawText string          `json:"raw_text"`
	// Detected false means the OCR ran but nothing usable was found; the
	// client routes to manual entry pre-filled with zeros. Not an error.
	Detected bool   `json:"detected"`
	ImageURL string `json:"image_url,omitempty"`
}

// ScanLabel accepts a base64 data-URI image ("data:image/...;base64,....").
// OCR failures come back as ExtractionError; an image that yields no nutrient
// values is a successful scan with Detected=false.
func (s *ScanService) ScanLabel(ctx context.Context, imageBase64 string) (*ScanResult, error) {
	data, err := decodeImageDataURI(imageBase64)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	text, err := s.recognizer.RecognizeText(ctx, data)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	record := Extract(text)
	result := &ScanResult{
		Record:   record,
		RawText:  text,
		Detected: record.HasData(),
	}

	// archive the shot for later review; the scan result never depends on it
	if url, err := utils.UploadBase64ImageToS3(imageBase64, "label-scans/scan"); err != nil {
		log.Printf("label image archive failed: %v", err)
	} else {
		result.ImageURL = url
	}

	return result, nil
}

func decodeImageDataURI(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 || !strings.HasPrefix(s, "data:image") {
			return nil, errors.New("invalid image data URI")
		}
		s = s[i+1:]
	}
	return base64.StdEncoding.DecodeString(s)
}
