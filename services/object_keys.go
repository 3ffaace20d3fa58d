package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ImageSet names one image-row table plus the fixed object-store namespace
// for that entity kind. All lifecycle operations are parameterized by it so
// the product gallery and the "home"/"about" single-slot entities share one
// implementation.
type ImageSet struct {
	Table     string
	Namespace string
}

var (
	ProductImages = ImageSet{Table: "product_images", Namespace: "products"}
	HomeImages    = ImageSet{Table: "home_images", Namespace: "home"}
	AboutImages   = ImageSet{Table: "about_images", Namespace: "about"}
)

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9.]+`)

// SanitizeFilename strips everything except [A-Za-z0-9.] from the original
// upload name.
func SanitizeFilename(name string) string {
	return filenameSanitizer.ReplaceAllString(name, "")
}

// BuildImageKey is the single point of object-store key construction:
//
//	<namespace>/<ownerId>/images/<epoch-millis>-<suffix>-<sanitized-filename>
//
// The 4-hex suffix guards against two uploads for the same owner landing in
// the same millisecond with the same original filename.
func BuildImageKey(set ImageSet, ownerID uuid.UUID, filename string) string {
	return fmt.Sprintf("%s/%s/images/%d-%s-%s",
		set.Namespace, ownerID, time.Now().UnixMilli(), randomSuffix(), SanitizeFilename(filename))
}

func randomSuffix() string {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing is effectively unreachable; millis alone is
		// the documented fallback granularity.
		return "0000"
	}
	return hex.EncodeToString(b[:])
}
