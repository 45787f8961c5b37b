// Package commands defines the txwizard CLI.
//
// Commands
//
//   - txwizard          Run the transfer request wizard
//   - catalog list      Print networks, plans and payment methods
//   - catalog show      Print one network, suggesting ids on a typo
//   - catalog import    Replace the stored catalog with a TOML file
//   - config init       Write the default config file
//
// The root command loads configuration before any subcommand runs. Flags
// override the matching config keys.
package commands
