package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/webstage/internal/ctxlog"
	"github.com/vk/webstage/internal/descriptor"
	"github.com/vk/webstage/internal/diag"
	"github.com/vk/webstage/internal/naming"
	"github.com/vk/webstage/internal/registry"
)

// BindingPrefix is the documented naming convention joining a link target
// to its registry binding name: "People" links to "service/People".
const BindingPrefix = "service/"

// BindingNameFor derives the expected registry binding name for a link
// target. Qualified targets keep only their simple identifier, so
// "backend.People" and "People" derive the same binding name.
func BindingNameFor(link string) string {
	return BindingPrefix + simpleName(link)
}

func simpleName(link string) string {
	if i := strings.LastIndexAny(link, "./"); i >= 0 {
		return link[i+1:]
	}
	return link
}

// ResolveAll resolves every declared reference against the registry and
// publishes one alias entry per resolvable declaration into the naming
// context. Declarations with no live binding are skipped and recorded on
// the diagnostic recorder. Ordering across declarations carries no meaning.
func ResolveAll(ctx context.Context, decls []*descriptor.Reference, reg *registry.Registry, nc *naming.Context, rec *diag.Recorder) error {
	logger := ctxlog.FromContext(ctx)
	resolved := 0

	for _, decl := range decls {
		bindingName := BindingNameFor(decl.Link)
		if _, ok := reg.Lookup(bindingName); !ok {
			rec.Record(ctx, diag.KindSkippedReference, decl.Name,
				fmt.Sprintf("link target '%s' derives binding name '%s', which is not registered", decl.Link, bindingName))
			continue
		}
		if err := nc.BindAlias(decl.Name, bindingName); err != nil {
			return fmt.Errorf("failed to bind reference '%s' -> '%s': %w", decl.Name, bindingName, err)
		}
		logger.Debug("Reference resolved.", "reference", decl.Name, "binding", bindingName)
		resolved++
	}

	logger.Info("Reference resolution finished.",
		"declared", len(decls), "resolved", resolved, "skipped", len(decls)-resolved)
	return nil
}
