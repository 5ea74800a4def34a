// Package inventory loads an Ansible YAML inventory and answers group and host queries over it.
package inventory

import "fmt"

// ConfigurationError reports an inventory that cannot be served: the file is missing,
// unreadable, unparsable or lacks the all.children section.
type ConfigurationError struct {
	Path   string // Inventory file path, empty when building from an in-memory document
	Reason string // Short description of the failure
	Err    error  // Underlying error, may be nil
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := "inventory configuration error"
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
