// Package commands defines the webpower CLI and wires the API client for
// its subcommands.
//
// Commands
//
//   - mailinglists           List all mailing lists of the account
//   - subscribe              Add or update a subscriber on a list
//   - unsubscribe            Remove a subscriber from a list
//   - subscriber             Fetch a subscriber's profile by email
//   - unsubscriptions        List unsubscriptions on a list within a period
//   - create-mailing         Create a mailing from content
//   - create-from-template   Create a mailing from a stored template
//   - send                   Send a mailing to a set of subscribers
//
// The root command loads an optional .env file, reads the YAML
// configuration and builds a single shared client before any subcommand
// runs. Results are printed as JSON on stdout; logs go to stderr.
package commands
