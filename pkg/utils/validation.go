package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MaxSignatureBytes caps the decoded size of a signature image (1 MiB).
const MaxSignatureBytes = 1 << 20

// allowed MIME types for signature data URIs
var allowedSignatureMIMEs = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// ValidateRequired validates that a field is not empty
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateMaxLength validates maximum string length
func ValidateMaxLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%s exceeds maximum length of %d characters", fieldName, maxLength)
	}
	return nil
}

// ValidateRecordID validates a consent record ID format
func ValidateRecordID(recordID string) error {
	if recordID == "" {
		return fmt.Errorf("record ID cannot be empty")
	}
	if len(recordID) > 255 {
		return fmt.Errorf("record ID too long (max 255 characters)")
	}
	return nil
}

// ValidateSignatureDataURI validates a signature image encoded as a data URI.
// Accepts PNG or JPEG payloads up to MaxSignatureBytes decoded.
func ValidateSignatureDataURI(dataURI string) error {
	if dataURI == "" {
		return nil
	}

	mime, payload, err := SplitDataURI(dataURI)
	if err != nil {
		return err
	}

	if !allowedSignatureMIMEs[mime] {
		return fmt.Errorf("unsupported signature image type: %s", mime)
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("invalid base64 signature payload: %w", err)
	}

	if len(decoded) > MaxSignatureBytes {
		return fmt.Errorf("signature image too large (%d bytes, max %d)", len(decoded), MaxSignatureBytes)
	}

	return nil
}

// SplitDataURI splits a data URI into its MIME type and base64 payload
func SplitDataURI(dataURI string) (mime string, payload string, err error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", "", fmt.Errorf("signature must be a data URI")
	}

	rest := strings.TrimPrefix(dataURI, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", "", fmt.Errorf("signature data URI must be base64 encoded")
	}

	return rest[:sep], rest[sep+len(";base64,"):], nil
}

// DecodeSignatureDataURI decodes a signature data URI into raw image bytes
func DecodeSignatureDataURI(dataURI string) (mime string, data []byte, err error) {
	mime, payload, err := SplitDataURI(dataURI)
	if err != nil {
		return "", nil, err
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 signature payload: %w", err)
	}

	return mime, data, nil
}

// SanitizeString removes dangerous characters from user input
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.TrimSpace(input)
	return input
}
