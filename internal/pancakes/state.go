package pancakes

import (
	"fmt"

	"pancakes/internal/bundle"
	"pancakes/internal/view"
)

// OnSave stores the ordered stack under StackKey.
func (p *Pancakes) OnSave(b bundle.Bundle) error {
	records, err := p.registry.Encode(p.backing)
	if err != nil {
		return fmt.Errorf("save stack: %w", err)
	}
	return b.Put(StackKey, records)
}

// OnLoad replaces the engine's state with the stack stored under StackKey and
// attaches the top slice's view. Any current content is hard-reset first.
func (p *Pancakes) OnLoad(b bundle.Bundle) error {
	raw, ok := b.Raw(StackKey)
	if !ok {
		return ErrNoSavedStack
	}
	restored, err := p.registry.DecodeJSON(raw)
	if err != nil {
		return fmt.Errorf("load stack: %w", err)
	}
	if len(restored) == 0 {
		return fmt.Errorf("load stack: %w", ErrEmptyStack)
	}

	p.Clear(false)
	p.backing = restored
	p.views = make([]view.View, len(restored))
	top := restored[len(restored)-1]
	topView := top.ToView(p.container)
	p.views[len(restored)-1] = topView
	p.container.AddView(topView)
	p.logger.Debug("stack restored", "size", len(restored), "top", top.Kind())
	return nil
}
