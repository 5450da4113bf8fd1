package material

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// Configure overlays raw configuration values onto a recipe. Keys are the
// recipe's mapstructure tags; unknown keys are an error. The result is
// validated.
//
// Decode failures are reported as *types.InvalidParameterError naming the
// offending key, or "materials.<name>" when no single key is to blame.
func Configure(r Recipe, raw map[string]any) error {
	if len(raw) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           r,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		reason := fmt.Sprintf("failed to decode %s settings: %v", r.RecipeName(), err)
		if key, ok := offendingKey(raw, err.Error()); ok {
			return types.Invalid(key, raw[key], reason)
		}
		return types.Invalid("materials."+r.RecipeName(), raw, reason)
	}

	return r.Validate()
}

// offendingKey finds the first configuration key, in sorted order, that a
// mapstructure error message names. Field errors quote the key ('size',
// 'base_color[2]'); unused keys follow "has invalid keys:".
func offendingKey(raw map[string]any, msg string) (string, bool) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	if _, list, ok := strings.Cut(msg, "has invalid keys: "); ok {
		list, _, _ = strings.Cut(list, "\n")
		for _, name := range strings.Split(list, ",") {
			name = strings.TrimSpace(name)
			if _, known := raw[name]; known {
				return name, true
			}
		}
	}

	for _, k := range keys {
		for _, quoted := range []string{"'" + k + "'", "'" + k + "[", "'" + k + "."} {
			if strings.Contains(msg, quoted) {
				return k, true
			}
		}
	}
	return "", false
}
