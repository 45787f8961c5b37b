// Package catalog holds the static reference data the wizard consumes:
// networks, volume/fee plans, payment methods and the access key.
package catalog

// Network is a destination network a request can target.
type Network struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Short string `toml:"short"`
}

// Plan pairs a volume label with the fee charged for it.
type Plan struct {
	Amount string `toml:"amount"`
	Fee    string `toml:"fee"`
}

// PaymentMethod is a fee deposit option shown on the payment step.
type PaymentMethod struct {
	Name    string `toml:"name"`
	Network string `toml:"network"`
	Address string `toml:"address"`
}

// Catalog is read-only once loaded.
type Catalog struct {
	Networks       []Network       `toml:"networks"`
	Plans          []Plan          `toml:"plans"`
	PaymentMethods []PaymentMethod `toml:"payment_methods"`
	Credential     string          `toml:"credential"`
	SupportURL     string          `toml:"support_url"`
}

// NetworkByID returns a copy of the network with the given id.
func (c Catalog) NetworkByID(id string) (Network, bool) {
	for _, n := range c.Networks {
		if n.ID == id {
			return n, true
		}
	}
	return Network{}, false
}

// PlanByAmount returns the plan whose amount label matches exactly.
func (c Catalog) PlanByAmount(amount string) (Plan, bool) {
	for _, p := range c.Plans {
		if p.Amount == amount {
			return p, true
		}
	}
	return Plan{}, false
}

// PaymentMethodByName returns the payment method with the given name.
func (c Catalog) PaymentMethodByName(name string) (PaymentMethod, bool) {
	for _, m := range c.PaymentMethods {
		if m.Name == name {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// HasPair reports whether (amount, fee) is one of the catalog's plans.
func (c Catalog) HasPair(amount, fee string) bool {
	p, ok := c.PlanByAmount(amount)
	return ok && p.Fee == fee
}
