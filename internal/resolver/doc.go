// Package resolver turns declared symbolic references into naming-context
// aliases against the live component registry.
//
// The binding name for a reference is derived from its link target by a
// fixed convention: the "service/" prefix plus the target's simple
// identifier (the segment after the last '.' or '/'). A declaration whose
// derived binding name has no live registry entry is skipped — startup
// still proceeds — but the skip is recorded as a structured diagnostic
// event so misconfiguration is observable.
package resolver
