// Package app contains the harness orchestrator.
//
// A Harness owns the startup sequence of the in-process test target:
// populate the component registry with fixture data, parse the deployed
// application's descriptor, resolve its declared references into the naming
// context, then start the serving container with the dependency injector
// attached. The sequence runs once per Harness; any failure before serving
// parks the harness in a terminal Failed state that every later call
// reports instead of hanging.
package app
