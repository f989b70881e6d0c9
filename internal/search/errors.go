package search

import "fmt"

// UnsupportedSchemeError is reported for workspace roots that are not file:// URIs.
// Only that root is skipped.
type UnsupportedSchemeError struct {
	URI    string
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("workspace root %s uses unsupported scheme %q, only file:// is supported", e.URI, e.Scheme)
}

func (e *UnsupportedSchemeError) Warning() bool { return true }

// RemoteHostError is reported for file:// roots naming a host other than
// localhost. Only that root is skipped.
type RemoteHostError struct {
	URI  string
	Host string
}

func (e *RemoteHostError) Error() string {
	return fmt.Sprintf("workspace root %s is on host %q, only local file:// roots are supported", e.URI, e.Host)
}

func (e *RemoteHostError) Warning() bool { return true }

// UnknownPolicyError is returned by ParsePolicy.
type UnknownPolicyError struct {
	Value string
}

func (e *UnknownPolicyError) Error() string {
	return fmt.Sprintf("unknown search policy %q (want always, never or noWorkspaceOnly)", e.Value)
}

func (e *UnknownPolicyError) InvalidInput() bool { return true }
