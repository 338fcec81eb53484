// Package app wires configuration, stores, gateway clients, and services
// into the object graph the CLI consumes.
package app
