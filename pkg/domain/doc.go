// Package domain contains the entities exchanged between the rating providers,
// the lookup logic and the command layer. They carry no transport or
// configuration concerns.
package domain
