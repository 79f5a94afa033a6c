package checkoutsvc

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWhatsAppReferenceFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^WA-[A-Z0-9]{10}$`)

	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, NewWhatsAppReference())
	}
}

func TestNewWhatsAppReferenceIsRandom(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		seen[NewWhatsAppReference()] = struct{}{}
	}

	// Collisions over a 36^10 space in a thousand draws would indicate a
	// broken generator.
	assert.Len(t, seen, 1000)
}
