package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// LoadFile decodes and validates a TOML catalog.
func LoadFile(path string) (Catalog, error) {
	var c Catalog
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Catalog{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Catalog{}, fmt.Errorf("catalog %s: unknown key %q", path, undec[0].String())
	}
	if err := Validate(c); err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}
