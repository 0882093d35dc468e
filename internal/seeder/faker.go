package seeder

import (
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
)

// DataSource produces field values for generated rows.
type DataSource interface {
	FirstName() string
	LastName() string
	Text() string
	Words(n int) []string
	DateOfBirth() time.Time
}

// FakerSource is the go-faker backed DataSource.
type FakerSource struct{}

// NewFakerSource seeds go-faker's package level random source, so two
// sources built with the same seed produce the same sequence.
func NewFakerSource(seed int64) *FakerSource {
	faker.SetRandomSource(faker.NewSafeSource(rand.NewSource(seed)))
	return &FakerSource{}
}

func (f *FakerSource) FirstName() string {
	return faker.FirstName()
}

func (f *FakerSource) LastName() string {
	return faker.LastName()
}

func (f *FakerSource) Text() string {
	return faker.Paragraph()
}

func (f *FakerSource) Words(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = faker.Word()
	}
	return words
}

func (f *FakerSource) DateOfBirth() time.Time {
	dob, err := time.Parse(time.DateOnly, faker.Date())
	if err != nil {
		return time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return dob
}
