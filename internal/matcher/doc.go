// Package matcher splits a pool of participants into fixed-size teams.
//
// Build draws a seeded initial partition that spreads personalities, roles
// and activities across teams. Balance then swaps members between teams to
// even out average skill without breaking those spreads. Form runs both.
package matcher
