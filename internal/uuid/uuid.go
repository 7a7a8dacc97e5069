// uuid id generation that allows mocking
package uuid

import (
	"github.com/google/uuid"
)

// sheetNamespace scopes name-based sheet ids so they never collide with
// ids derived for other purposes from the same creature id.
var sheetNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://dicecloud.com/creature"))

// Generator hands out request ids and stable sheet ids
type Generator interface {
	// New returns a random id
	New() string
	// FromName returns the same id every time it is given the same name
	FromName(name string) string
}

// GoogleUUIDGenerator implements Generator using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a random v4 UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// FromName generates a v5 UUID string in the sheet namespace
func (g *GoogleUUIDGenerator) FromName(name string) string {
	return uuid.NewSHA1(sheetNamespace, []byte(name)).String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
