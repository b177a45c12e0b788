// Package filetype resolves declared media types and content hashes for
// files handled by the import and export commands.
package filetype

import (
	"crypto/sha256"
	"encoding/hex"
	"mime"
	"path/filepath"
	"strings"
)

// Media types understood by the envelope format.
const (
	JSON      = "application/json"
	PlainText = "text/plain"
)

// HashBytes computes the SHA-256 hash of the provided bytes.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DetectMIME returns the media type a file picker would declare for path.
// The type is derived from the extension only; content is never inspected.
// Unknown extensions yield an empty string.
func DetectMIME(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "":
		return ""
	case ".json":
		return JSON
	case ".txt", ".text":
		return PlainText
	case ".md", ".markdown":
		return "text/markdown"
	case ".csv":
		return "text/csv"
	case ".yaml", ".yml":
		return "text/yaml"
	case ".xml":
		return "application/xml"
	case ".html", ".htm":
		return "text/html"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}

	mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	if err != nil {
		return ""
	}
	return mediaType
}

// Matches reports whether declared contains any of the accepted media types.
// Matching is by substring so parameters such as "; charset=utf-8" are tolerated.
func Matches(declared string, accepted []string) bool {
	if declared == "" {
		return false
	}
	declared = strings.ToLower(declared)
	for _, a := range accepted {
		if a != "" && strings.Contains(declared, strings.ToLower(a)) {
			return true
		}
	}
	return false
}
