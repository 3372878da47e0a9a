// FILE: lixenwraith/looks/pass.go
package looks

import "fmt"

// PassContext carries what a pass may consult while building its entries.
type PassContext struct {
	Profile      string
	Environment  Environment
	Capabilities Capabilities
	Options      Options
	Policy       Policy
	Table        *Table
}

// Pass is one ordered, optionally gated bulk insertion into a Table.
type Pass struct {
	Name string
	// Gate decides whether the pass runs. A nil Gate always runs.
	Gate func(PassContext) bool
	// Defaults builds the entries. It is never called for a skipped pass.
	Defaults func(PassContext) ([]Entry, error)
}

// RequireCapabilities gates a pass on every capability in want.
func RequireCapabilities(want Capabilities) func(PassContext) bool {
	return func(ctx PassContext) bool { return ctx.Capabilities.Has(want) }
}

// LackCapabilities gates a pass on the absence of every capability in unwanted.
func LackCapabilities(unwanted Capabilities) func(PassContext) bool {
	return func(ctx PassContext) bool { return ctx.Capabilities&unwanted == 0 }
}

// Apply runs passes strictly in order. A pass whose gate is false is skipped
// entirely: none of its entries are built and the table is not touched.
// The first failing pass aborts; entries of earlier passes stay applied.
func (t *Table) Apply(ctx PassContext, passes ...Pass) (applied []string, err error) {
	ctx.Table = t
	for _, p := range passes {
		if p.Gate != nil && !p.Gate(ctx) {
			continue
		}
		if p.Defaults == nil {
			continue
		}
		entries, err := p.Defaults(ctx)
		if err != nil {
			return applied, fmt.Errorf("pass %s: %w", p.Name, err)
		}
		t.PutDefaults(entries...)
		t.recordPass(p.Name)
		applied = append(applied, p.Name)
	}
	return applied, nil
}
