package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------- test fakes --------

type fakeRecognizer struct {
	text string
	err  error

	gotBytes []byte
}

func (f *fakeRecognizer) RecognizeText(_ context.Context, imageBytes []byte) (string, error) {
	f.gotBytes = imageBytes
	return f.text, f.err
}

func testImageURI(payload []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
}

func TestScanLabelExtractsRecord(t *testing.T) {
	rec := &fakeRecognizer{text: "Calories 250 Protein 12g Total Fat 5g"}
	svc := NewScanService(rec)

	result, err := svc.ScanLabel(context.Background(), testImageURI([]byte{0x89, 0x50, 0x4e, 0x47}))
	require.NoError(t, err)

	assert.True(t, result.Detected)
	assert.Equal(t, 250.0, fval(t, result.Record.Calories))
	assert.Equal(t, 12.0, fval(t, result.Record.Protein))
	assert.Equal(t, 5.0, fval(t, result.Record.Fat))
	assert.Equal(t, rec.text, result.RawText)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, rec.gotBytes)
}

func TestScanLabelNoNutritionDetected(t *testing.T) {
	svc := NewScanService(&fakeRecognizer{text: "ingredients oats honey salt"})

	result, err := svc.ScanLabel(context.Background(), testImageURI([]byte{1, 2, 3}))
	require.NoError(t, err)

	// a scan that finds nothing is a result, not a failure
	assert.False(t, result.Detected)
	assert.False(t, result.Record.HasData())
}

func TestScanLabelOCRFailure(t *testing.T) {
	svc := NewScanService(&fakeRecognizer{err: errors.New("throttled")})

	_, err := svc.ScanLabel(context.Background(), testImageURI([]byte{1}))
	var xerr *ExtractionError
	require.ErrorAs(t, err, &xerr)
}

func TestScanLabelRejectsBadImage(t *testing.T) {
	svc := NewScanService(&fakeRecognizer{text: "Calories 100"})

	var xerr *ExtractionError
	_, err := svc.ScanLabel(context.Background(), "data:text/plain;base64,aGVsbG8=")
	require.ErrorAs(t, err, &xerr)

	_, err = svc.ScanLabel(context.Background(), "not base64 at all!!!")
	require.ErrorAs(t, err, &xerr)
}

func TestScanLabelAcceptsBarePayload(t *testing.T) {
	// clients may send plain base64 without the data-URI envelope
	svc := NewScanService(&fakeRecognizer{text: "Sodium 160mg"})

	result, err := svc.ScanLabel(context.Background(), base64.StdEncoding.EncodeToString([]byte{9, 9}))
	require.NoError(t, err)
	assert.True(t, result.Detected)
	assert.Equal(t, 160.0, fval(t, result.Record.Sodium))
}
