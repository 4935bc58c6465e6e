// Package webstage is an in-process web application test harness.
//
// A harness deploys a web application — fixture business-logic components
// plus its HTTP handlers — inside a single test process and exposes it on a
// local port, so a browser-automation driver can exercise it end-to-end
// without a separately managed deployment.
//
// The interesting machinery is the reference-resolution and
// dependency-injection subsystem:
//
//   - internal/registry holds component instances under unique binding
//     names, pre-populated with deterministic fixture data.
//   - internal/descriptor parses the application's HCL deployment
//     descriptor into declared symbolic references.
//   - internal/resolver maps each declared reference onto a registry
//     binding by naming convention and publishes alias entries.
//   - internal/naming is the shared write-once naming context queried by
//     the injector during serving.
//   - internal/injector reflectively populates the component fields of
//     every freshly created handler instance before its first request.
//   - internal/app orchestrates the startup phases and hands tests a
//     readiness handle.
//
// Startup is strictly sequential and single-shot per process; once the
// naming context freezes, the serving path reads it without locks.
package webstage
