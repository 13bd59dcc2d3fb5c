// Package team holds the team container used by the matcher and the
// exporters that write formed teams to CSV and YAML.
package team
