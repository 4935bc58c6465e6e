package descriptor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/webstage/internal/ctxlog"
	"github.com/vk/webstage/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// fileRoot is the gohcl decode target for the whole descriptor file.
type fileRoot struct {
	Application *applicationBlock `hcl:"application,block"`
	References  []*referenceBlock `hcl:"reference,block"`
	EnvEntries  []*envBlock       `hcl:"env,block"`
}

type applicationBlock struct {
	Name        string `hcl:"name,label"`
	ContextPath string `hcl:"context_path,optional"`
}

type referenceBlock struct {
	Name string `hcl:"name,label"`
	Link string `hcl:"link"`
}

type envBlock struct {
	Name  string    `hcl:"name,label"`
	Type  string    `hcl:"type"`
	Value cty.Value `hcl:"value"`
}

// envTypes maps the descriptor's type keywords onto cty types, the same
// surface the registry's contract checks use.
var envTypes = map[string]cty.Type{
	"string": cty.String,
	"number": cty.Number,
	"bool":   cty.Bool,
}

// Load locates and parses the deployment descriptor of the application
// deployed at appPath. Any absence or well-formedness problem is returned
// as a *MalformedError; the orchestrator treats that as fatal.
func Load(ctx context.Context, appPath string) (*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Descriptor loader started.", "app_path", appPath)

	path, err := fsutil.FindOne(appPath, FileName)
	if err != nil {
		return nil, &MalformedError{Path: appPath, Err: err}
	}
	logger.Debug("Descriptor file located.", "file", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &MalformedError{Path: path, Err: diags}
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, &MalformedError{Path: path, Err: diags}
	}

	if root.Application == nil {
		return nil, &MalformedError{Path: path, Err: errors.New("missing required 'application' block")}
	}

	d := &Descriptor{
		Application: Application{
			Name:        root.Application.Name,
			ContextPath: normalizeContextPath(root.Application.ContextPath, root.Application.Name),
		},
		EnvEntries: make(map[string]cty.Value),
	}

	seen := make(map[string]struct{})
	for _, ref := range root.References {
		if ref.Link == "" {
			return nil, &MalformedError{Path: path, Err: fmt.Errorf("reference '%s' has an empty link", ref.Name)}
		}
		if _, dup := seen[ref.Name]; dup {
			return nil, &MalformedError{Path: path, Err: fmt.Errorf("duplicate reference '%s'", ref.Name)}
		}
		seen[ref.Name] = struct{}{}
		d.References = append(d.References, &Reference{Name: ref.Name, Link: ref.Link})
	}

	for _, entry := range root.EnvEntries {
		want, ok := envTypes[entry.Type]
		if !ok {
			return nil, &MalformedError{Path: path, Err: fmt.Errorf("env entry '%s' has unknown type '%s'", entry.Name, entry.Type)}
		}
		if _, dup := d.EnvEntries[entry.Name]; dup {
			return nil, &MalformedError{Path: path, Err: fmt.Errorf("duplicate env entry '%s'", entry.Name)}
		}
		val, err := convert.Convert(entry.Value, want)
		if err != nil {
			return nil, &MalformedError{Path: path, Err: fmt.Errorf("env entry '%s': value does not conform to type '%s': %w", entry.Name, entry.Type, err)}
		}
		d.EnvEntries[entry.Name] = val
	}

	logger.Info("Deployment descriptor loaded.",
		"application", d.Application.Name,
		"references", len(d.References),
		"env_entries", len(d.EnvEntries))
	return d, nil
}

// normalizeContextPath defaults the context path to "/<app name>" and
// guarantees a leading slash with no trailing slash.
func normalizeContextPath(contextPath, appName string) string {
	p := contextPath
	if p == "" {
		p = appName
	}
	p = "/" + strings.Trim(p, "/")
	if p == "/" {
		return ""
	}
	return p
}
