// Package state tracks which two-step admin command is waiting for its reply.
package state
