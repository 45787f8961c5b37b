package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports every integrity problem in c, joined.
func Validate(c Catalog) error {
	var errs []error
	if len(c.Networks) == 0 {
		errs = append(errs, errors.New("no networks"))
	}
	if len(c.Plans) == 0 {
		errs = append(errs, errors.New("no plans"))
	}
	if strings.TrimSpace(c.Credential) == "" {
		errs = append(errs, errors.New("credential is empty"))
	} else if c.Credential != strings.TrimSpace(c.Credential) {
		// input is trimmed before comparison, so a padded key could never match
		errs = append(errs, errors.New("credential has surrounding whitespace"))
	}

	seen := map[string]bool{}
	for i, n := range c.Networks {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("network %d: empty id", i))
			continue
		}
		if seen[n.ID] {
			errs = append(errs, fmt.Errorf("network %q: duplicate id", n.ID))
		}
		seen[n.ID] = true
		if n.Name == "" {
			errs = append(errs, fmt.Errorf("network %q: empty name", n.ID))
		}
	}

	seen = map[string]bool{}
	for i, p := range c.Plans {
		if p.Amount == "" || p.Fee == "" {
			errs = append(errs, fmt.Errorf("plan %d: amount and fee are both required", i))
			continue
		}
		if seen[p.Amount] {
			errs = append(errs, fmt.Errorf("plan %q: duplicate amount", p.Amount))
		}
		seen[p.Amount] = true
	}

	seen = map[string]bool{}
	for i, m := range c.PaymentMethods {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("payment method %d: empty name", i))
			continue
		}
		if seen[m.Name] {
			errs = append(errs, fmt.Errorf("payment method %q: duplicate name", m.Name))
		}
		seen[m.Name] = true
		if m.Address == "" {
			errs = append(errs, fmt.Errorf("payment method %q: empty address", m.Name))
		}
	}
	return errors.Join(errs...)
}
