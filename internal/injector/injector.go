package injector

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/vk/webstage/internal/ctxlog"
	"github.com/vk/webstage/internal/diag"
	"github.com/vk/webstage/internal/naming"
)

// TagName marks a struct field as an injection point. The tag value is the
// reference name to resolve; an empty value derives the name from the field
// name with its first rune lower-cased, and "-" opts the field out.
const TagName = "component"

// point is one discovered injection point on a handler type.
type point struct {
	fieldIndex []int
	fieldName  string
	refName    string
	fieldType  reflect.Type
}

// Injector resolves and sets handler injection points. It is safe for
// concurrent use once the naming context is frozen.
type Injector struct {
	nc  *naming.Context
	rec *diag.Recorder

	// plans caches discovered injection points per handler type
	// (reflect.Type -> []point). Handler types are a small, stable set, so
	// reads dominate after warmup.
	plans sync.Map
}

// New creates an Injector reading from the given naming context and
// reporting misses to the given recorder.
func New(nc *naming.Context, rec *diag.Recorder) *Injector {
	return &Injector{nc: nc, rec: rec}
}

// Inject is the handler-creation hook. It scans the handler instance's
// injection points, resolves each through the naming context, and sets the
// resolved component instances via reflection. It returns the same instance
// with its fields populated. Non-pointer or non-struct handlers are
// returned untouched.
func (in *Injector) Inject(ctx context.Context, handler any) any {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return handler
	}
	elem := v.Elem()

	for _, p := range in.planFor(elem.Type()) {
		binding, err := in.nc.Resolve(p.refName)
		if err != nil {
			in.rec.Record(ctx, diag.KindUnresolvedInjectionPoint, p.refName,
				fmt.Sprintf("handler %s field %s: %v", elem.Type(), p.fieldName, err))
			continue
		}

		instanceType := binding.ContractType
		if p.fieldType.Kind() == reflect.Interface {
			if !instanceType.Implements(p.fieldType) {
				in.rec.Record(ctx, diag.KindUnresolvedInjectionPoint, p.refName,
					fmt.Sprintf("handler %s field %s: component type %s does not implement %s",
						elem.Type(), p.fieldName, instanceType, p.fieldType))
				continue
			}
		} else if !instanceType.AssignableTo(p.fieldType) {
			in.rec.Record(ctx, diag.KindUnresolvedInjectionPoint, p.refName,
				fmt.Sprintf("handler %s field %s: component type %s is not assignable to %s",
					elem.Type(), p.fieldName, instanceType, p.fieldType))
			continue
		}

		elem.FieldByIndex(p.fieldIndex).Set(reflect.ValueOf(binding.Instance))
		ctxlog.FromContext(ctx).Debug("Injected component.",
			"handler", elem.Type().String(), "field", p.fieldName, "reference", p.refName)
	}

	return handler
}

// planFor returns the cached injection plan for a handler type, discovering
// it on first use.
func (in *Injector) planFor(t reflect.Type) []point {
	if cached, ok := in.plans.Load(t); ok {
		return cached.([]point)
	}

	var plan []point
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}
		if !field.IsExported() {
			// Unexported fields cannot be set reflectively; treat the tag
			// as a programmer error so it is caught in tests.
			panic(fmt.Sprintf("handler %s: component tag on unexported field %s", t, field.Name))
		}
		refName := tag
		if refName == "" {
			refName = lowerFirst(field.Name)
		}
		plan = append(plan, point{
			fieldIndex: field.Index,
			fieldName:  field.Name,
			refName:    refName,
			fieldType:  field.Type,
		})
	}

	actual, _ := in.plans.LoadOrStore(t, plan)
	return actual.([]point)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
