// Package version holds the application identity used in generated
// artifacts, such as PDF document metadata.
package version

import "fmt"

const (
	// AppName is the short application name.
	AppName = "mangadl"

	// Version is the application version.
	Version = "1.2.0"
)

// Identity returns the combined application identity string, e.g.
// "mangadl - 1.2.0".
func Identity() string {
	return fmt.Sprintf("%s - %s", AppName, Version)
}
