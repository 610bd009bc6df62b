// Package domain holds the error values shared by the bankdomain service
// host, its plugins and the CLI.
package domain
