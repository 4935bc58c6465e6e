// Package descriptor reads a web application's deployment descriptor.
//
// The descriptor is a single HCL file (deploy.hcl) in the deployed
// application's directory. It names the application, declares its symbolic
// references to backend components, and may carry typed environment
// entries. The parsed model is read-only; resolution against the live
// component registry happens later, in the resolver package.
package descriptor
