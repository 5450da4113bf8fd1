// Package material holds the parametric recipes that produce texture sets.
//
// Every recipe is a plain struct of parameters. Generate validates the
// parameters and then derives the maps deterministically from them; recipes
// keep no state between calls and may run concurrently.
package material

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// Recipe produces one texture set.
type Recipe interface {
	// RecipeName is the output stem of the set.
	RecipeName() string
	// Validate checks the parameters without generating anything.
	Validate() error
	Generate() (*types.TextureSet, error)
}

// QualityHinter is implemented by recipes that want a specific lossy
// encoding quality instead of the encoder default.
type QualityHinter interface {
	EncodeQuality() int
}

// Catalog returns the default recipes in generation order.
func Catalog() []Recipe {
	return []Recipe{
		DefaultWallLower(),
		DefaultWallUpper(),
		DefaultCeiling(),
		DefaultTrimStrip(),
		DefaultSkylight(),
		DefaultColumn(),
		DefaultArch(),
		DefaultBackboard(),
		DefaultPlaque(),
		DefaultFrame(),
	}
}

// Find returns the recipe with the given name, or nil.
func Find(recipes []Recipe, name string) Recipe {
	for _, r := range recipes {
		if r.RecipeName() == name {
			return r
		}
	}
	return nil
}

func checkName(name string) error {
	if name == "" {
		return types.Invalid("name", name, "must not be empty")
	}
	return nil
}

func checkSize(param string, v int) error {
	if v <= 0 {
		return types.Invalid(param, v, "must be positive")
	}
	return nil
}

func checkColor(param string, c types.RGB) error {
	if !c.Valid() {
		return types.Invalid(param, c, "components must be within [0,255]")
	}
	return nil
}

func checkLevel(param string, v int) error {
	return checkRange(param, v, 0, 255)
}

func checkRange(param string, v, lo, hi int) error {
	if v < lo || v > hi {
		return types.Invalid(param, v, fmt.Sprintf("must be within [%d,%d]", lo, hi))
	}
	return nil
}

func checkNonNegative(param string, v float64) error {
	if err := checkFinite(param, v); err != nil {
		return err
	}
	if v < 0 {
		return types.Invalid(param, v, "must not be negative")
	}
	return nil
}

func checkFinite(param string, vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return types.Invalid(param, v, "must be a finite number")
		}
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// OutputStems lists the file stems a recipe writes, without generating it.
func OutputStems(r Recipe) []string {
	set := types.NewTextureSet(r.RecipeName())
	switch r.(type) {
	case *Plaster, *Ceiling:
		return []string{
			set.Stem(types.ChannelBaseColor),
			set.Stem(types.ChannelNormal),
			set.Stem(types.ChannelRoughness),
		}
	}
	return []string{set.Stem(types.ChannelImage)}
}
