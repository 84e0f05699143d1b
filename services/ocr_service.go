package services

import (
	"context"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/otiai10/gosseract/v2"
)

// TextRecognizer is the OCR collaborator: opaque, possibly slow, never
// retried automatically. Failures surface to the caller as ExtractionError.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, imageBytes []byte) (string, error)
}

// NewTextRecognizer picks the recognizer from OCR_PROVIDER: "tesseract" for
// the local engine, anything else for Rekognition.
func NewTextRecognizer() (TextRecognizer, error) {
	if strings.EqualFold(os.Getenv("OCR_PROVIDER"), "tesseract") {
		return &TesseractService{}, nil
	}
	return NewRekognitionService()
}

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// RecognizeText runs DetectText and joins the LINE detections top to bottom,
// which keeps each nutrient and its amount adjacent for the extractor.
func (r *RekognitionService) RecognizeText(ctx context.Context, imageBytes []byte) (string, error) {
	out, err := r.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: imageBytes},
	})
	if err != nil {
		return "", err
	}

	var lines []string
	for _, d := range out.TextDetections {
		if d.Type == types.TextTypesLine && d.DetectedText != nil {
			lines = append(lines, *d.DetectedText)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// TesseractService shells into a local Tesseract install via gosseract, for
// deployments that keep label images off third-party APIs.
type TesseractService struct{}

func (t *TesseractService) RecognizeText(_ context.Context, imageBytes []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(imageBytes); err != nil {
		return "", err
	}
	return client.Text()
}
