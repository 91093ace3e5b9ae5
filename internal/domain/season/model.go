package season

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidConfig = errors.New("invalid season config")
)

// Bucket names one season of the year and the calendar months it covers.
type Bucket struct {
	Name    string `yaml:"name" validate:"required,max=32"`
	Months  []int  `yaml:"months" validate:"required,min=1,max=12,dive,min=1,max=12"`
	Ordinal int    `yaml:"ordinal" validate:"min=1,max=4"`
}

// Config is the month-to-season mapping used by a Classifier.
type Config struct {
	Buckets []Bucket `yaml:"buckets" validate:"len=4,dive"`
}

// DefaultConfig is the league's calendar: the year opens with summer
// and closes with spring.
func DefaultConfig() Config {
	return Config{
		Buckets: []Bucket{
			{Name: "Summer", Months: []int{12, 1, 2}, Ordinal: 1},
			{Name: "Autumn", Months: []int{3, 4, 5}, Ordinal: 2},
			{Name: "Winter", Months: []int{6, 7, 8}, Ordinal: 3},
			{Name: "Spring", Months: []int{9, 10, 11}, Ordinal: 4},
		},
	}
}

// Validate checks the buckets form a partition of the twelve months with
// distinct names and ordinals.
func (c Config) Validate() error {
	if len(c.Buckets) != 4 {
		return fmt.Errorf("%w: expected 4 buckets, got %d", ErrInvalidConfig, len(c.Buckets))
	}

	seenMonth := make(map[int]string, 12)
	seenName := make(map[string]struct{}, 4)
	seenOrdinal := make(map[int]struct{}, 4)
	for _, bucket := range c.Buckets {
		name := strings.TrimSpace(bucket.Name)
		if name == "" {
			return fmt.Errorf("%w: bucket name is required", ErrInvalidConfig)
		}
		if strings.ContainsAny(name, " \t") {
			return fmt.Errorf("%w: bucket name must be a single word: %q", ErrInvalidConfig, name)
		}
		key := strings.ToLower(name)
		if _, exists := seenName[key]; exists {
			return fmt.Errorf("%w: duplicate bucket name %s", ErrInvalidConfig, name)
		}
		seenName[key] = struct{}{}

		if bucket.Ordinal < 1 || bucket.Ordinal > 4 {
			return fmt.Errorf("%w: bucket %s ordinal must be within 1..4", ErrInvalidConfig, name)
		}
		if _, exists := seenOrdinal[bucket.Ordinal]; exists {
			return fmt.Errorf("%w: duplicate ordinal %d", ErrInvalidConfig, bucket.Ordinal)
		}
		seenOrdinal[bucket.Ordinal] = struct{}{}

		for _, month := range bucket.Months {
			if month < 1 || month > 12 {
				return fmt.Errorf("%w: bucket %s has invalid month %d", ErrInvalidConfig, name, month)
			}
			if owner, exists := seenMonth[month]; exists {
				return fmt.Errorf("%w: month %d assigned to both %s and %s", ErrInvalidConfig, month, owner, name)
			}
			seenMonth[month] = name
		}
	}
	if len(seenMonth) != 12 {
		return fmt.Errorf("%w: buckets cover %d of 12 months", ErrInvalidConfig, len(seenMonth))
	}

	return nil
}

// Classification is the season a date or label resolves to. The zero value
// means unknown.
type Classification struct {
	Year    int
	Name    string
	Label   string
	Ordinal int
	OK      bool
}
