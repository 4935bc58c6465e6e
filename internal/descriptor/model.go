package descriptor

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// FileName is the descriptor file the loader searches for inside a deployed
// application directory.
const FileName = "deploy.hcl"

// Descriptor is the parsed structural model of a deployment descriptor.
type Descriptor struct {
	Application Application
	References  []*Reference
	EnvEntries  map[string]cty.Value
}

// Application identifies the web application being deployed.
type Application struct {
	Name        string
	ContextPath string
}

// Reference is one declared symbolic dependency: the name the application's
// handlers use, and the identifier of the target component it links to.
type Reference struct {
	Name string
	Link string
}

// MalformedError reports an absent or not-well-formed descriptor. It is
// fatal to harness startup.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed deployment descriptor at %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
