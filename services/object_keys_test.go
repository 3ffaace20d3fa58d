package services

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "frontview.jpg", SanitizeFilename("front view.jpg"))
	assert.Equal(t, "cafphoto.png", SanitizeFilename("café_photo!.png"))
	assert.Equal(t, "IMG1234.JPEG", SanitizeFilename("IMG-1234.JPEG"))
	assert.Equal(t, "", SanitizeFilename("___"))
}

func TestBuildImageKey(t *testing.T) {
	owner := uuid.Must(uuid.NewV7())

	key := BuildImageKey(ProductImages, owner, "front view.jpg")

	pattern := regexp.MustCompile(`^products/` + regexp.QuoteMeta(owner.String()) + `/images/\d+-[0-9a-f]{4}-frontview\.jpg$`)
	assert.Regexp(t, pattern, key)
}

func TestBuildImageKey_NamespacePerEntity(t *testing.T) {
	owner := uuid.Must(uuid.NewV7())

	assert.Regexp(t, `^home/`, BuildImageKey(HomeImages, owner, "hero.jpg"))
	assert.Regexp(t, `^about/`, BuildImageKey(AboutImages, owner, "team.jpg"))
}

func TestBuildImageKey_CollisionSuffix(t *testing.T) {
	owner := uuid.Must(uuid.NewV7())

	// Keys sharing a millisecond must still differ, which only the suffix
	// can guarantee. Group by the timestamp so keys in different
	// milliseconds cannot mask a missing suffix.
	keyParts := regexp.MustCompile(`/images/(\d+)-(.+)$`)
	perMillis := make(map[string]map[string]bool)
	for i := 0; i < 10; i++ {
		key := BuildImageKey(ProductImages, owner, "photo.jpg")
		m := keyParts.FindStringSubmatch(key)
		require.Len(t, m, 3)

		millis, rest := m[1], m[2]
		if perMillis[millis] == nil {
			perMillis[millis] = make(map[string]bool)
		}
		assert.False(t, perMillis[millis][rest], "same-millisecond keys must differ: %s", key)
		perMillis[millis][rest] = true
	}
}

func TestRandomSuffix(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		s := randomSuffix()
		assert.Regexp(t, `^[0-9a-f]{4}$`, s)
		seen[s] = true
	}
	// 32 draws from a 16-bit space collapsing to a single value means the
	// entropy source is gone
	assert.Greater(t, len(seen), 1)
}
