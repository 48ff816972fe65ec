package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	uploadPrefix  = "form-attachments"
	maxStemLen    = 50
	maxObjectPath = 1024
)

var nonWord = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// stripMarks decomposes to NFD and drops combining marks, so "Résumé.pdf"
// sanitises to "Resume.pdf" rather than losing characters outright.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeFilename reduces an arbitrary client-supplied filename to a safe
// object-key component: diacritics stripped, anything outside [A-Za-z0-9_-]
// collapsed to underscores, stem capped at maxStemLen runes, extension
// lowercased. An unusable name degrades to "file".
func SanitizeFilename(name string) string {
	name = path.Base(strings.TrimSpace(name))

	ext := strings.ToLower(path.Ext(name))
	stem := strings.TrimSuffix(name, path.Ext(name))

	if out, _, err := transform.String(stripMarks, stem); err == nil {
		stem = out
	}
	stem = nonWord.ReplaceAllString(stem, "_")
	stem = strings.Trim(stem, "_")
	if stem == "" {
		stem = "file"
	}
	if r := []rune(stem); len(r) > maxStemLen {
		stem = string(r[:maxStemLen])
	}

	if out, _, err := transform.String(stripMarks, ext); err == nil {
		ext = out
	}
	ext = nonWord.ReplaceAllString(strings.TrimPrefix(ext, "."), "")
	if ext != "" {
		return stem + "." + ext
	}
	return stem
}

// ObjectPath builds the storage key for a new attachment. The timestamp and
// random token keep concurrent uploads of identically named files apart.
func ObjectPath(filename string) (string, error) {
	tok := make([]byte, 6)
	if _, err := rand.Read(tok); err != nil {
		return "", fmt.Errorf("storage: random token: %w", err)
	}
	p := fmt.Sprintf("%s/%d_%s_%s", uploadPrefix, time.Now().UnixMilli(), hex.EncodeToString(tok), SanitizeFilename(filename))
	if len(p) > maxObjectPath {
		p = p[:maxObjectPath]
	}
	return p, nil
}

// ValidObjectPath reports whether p is a key this service could have issued.
// Handlers use it to refuse downloads or deletes outside the upload prefix.
func ValidObjectPath(p string) bool {
	if p == "" || len(p) > maxObjectPath {
		return false
	}
	if strings.Contains(p, "..") {
		return false
	}
	return strings.HasPrefix(p, uploadPrefix+"/")
}
