// Package services contains the core business logic, wired to the
// outside world exclusively through the driven ports. Services
// implement the driving interfaces consumed by the CLI.
package services
