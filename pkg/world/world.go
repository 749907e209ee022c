// Package world is a small in-memory game world for trying out socials:
// named objects, a matcher for {token} references, an event bus that hands
// each object its own rendered string, and a table of predefined socials.
package world

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/crystal-mush/mushemote/pkg/socials"
)

// World holds the objects taking part in emotes.
type World struct {
	Factory *socials.Factory
	Bus     *Bus
	Metrics *Metrics // may be nil

	mu      sync.RWMutex
	objects []*Object
	socials map[string]string // social name (lower-case) -> template
}

// New creates an empty world rendering with f.
func New(f *socials.Factory, m *Metrics) *World {
	return &World{
		Factory: f,
		Bus:     NewBus(),
		Metrics: m,
		socials: make(map[string]string),
	}
}

// Add creates a new object. Names are unique, ignoring case.
func (w *World) Add(name, sex string) (*Object, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("object name is empty")
	}
	if strings.ContainsAny(name, "{}%") {
		return nil, fmt.Errorf("object name %q contains a reserved character", name)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, o := range w.objects {
		if strings.EqualFold(o.name, name) {
			return nil, fmt.Errorf("object %q already exists", o.name)
		}
	}
	obj := NewObject(name, sex)
	obj.DBRef = DBRef(len(w.objects))
	w.objects = append(w.objects, obj)
	return obj, nil
}

// Objects returns every object in the order they were added.
func (w *World) Objects() []*Object {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*Object(nil), w.objects...)
}

// Find returns the object with exactly this name, ignoring case, or nil.
func (w *World) Find(name string) *Object {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, o := range w.objects {
		if strings.EqualFold(o.name, name) {
			return o
		}
	}
	return nil
}

// Lookup resolves a name the way players type it: an exact name first,
// then a unique prefix. Ambiguous or unknown names return nil.
func (w *World) Lookup(name string) *Object {
	if obj := w.Find(name); obj != nil {
		return obj
	}
	prefix := strings.ToLower(name)
	if prefix == "" {
		return nil
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	var found *Object
	for _, o := range w.objects {
		if strings.HasPrefix(strings.ToLower(o.name), prefix) {
			if found != nil {
				return nil
			}
			found = o
		}
	}
	return found
}

// Match returns a socials.MatchFunc that resolves "me" to actor and anything
// else through Lookup.
func (w *World) Match(actor *Object) socials.MatchFunc {
	return func(token string, _ ...any) socials.Object {
		token = strings.TrimSpace(token)
		if strings.EqualFold(token, "me") {
			return actor
		}
		// A nil *Object must not reach the engine as a non-nil interface.
		if obj := w.Lookup(token); obj != nil {
			return obj
		}
		return nil
	}
}

// SetSocials replaces the predefined socials table.
func (w *World) SetSocials(table map[string]string) {
	next := make(map[string]string, len(table))
	for name, tmpl := range table {
		next[strings.ToLower(name)] = tmpl
	}
	w.mu.Lock()
	w.socials = next
	w.mu.Unlock()
	w.Metrics.loaded(len(next))
	log.Printf("world: loaded %d socials", len(next))
}

// SocialTemplate returns the template for a predefined social.
func (w *World) SocialTemplate(name string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	tmpl, ok := w.socials[strings.ToLower(name)]
	return tmpl, ok
}

// SocialNames lists the predefined socials, sorted.
func (w *World) SocialNames() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	names := make([]string, 0, len(w.socials))
	for name := range w.socials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Emote performs a free-form emote as actor. Objects are referred to with
// {name}; see socials.ConvertEmote.
func (w *World) Emote(actor *Object, text string) error {
	tmpl, perspectives, err := w.Factory.ConvertEmote(text, w.Match(actor), []socials.Object{actor})
	if err != nil {
		w.Metrics.failed(socials.Kind(err))
		return fmt.Errorf("emote: %w", err)
	}
	return w.perform(EvEmote, "", actor, tmpl, perspectives)
}

// Social performs the predefined social name as actor. The targets become
// %2, %3 and so on.
func (w *World) Social(actor *Object, name string, targets ...*Object) error {
	tmpl, ok := w.SocialTemplate(name)
	if !ok {
		w.Metrics.failed("no_social")
		return fmt.Errorf("no such social %q", name)
	}
	perspectives := []socials.Object{actor}
	for _, t := range targets {
		perspectives = append(perspectives, t)
	}
	return w.perform(EvSocial, strings.ToLower(name), actor, tmpl, perspectives)
}

func (w *World) perform(kind EventType, social string, actor *Object, tmpl string, perspectives []socials.Object) error {
	strs, err := w.Factory.GetStrings(tmpl, perspectives, nil)
	if err != nil {
		w.Metrics.failed(socials.Kind(err))
		return fmt.Errorf("%s: %w", kind, err)
	}
	w.Metrics.rendered(kind)

	bystander := strs[len(strs)-1]
	delivered := 0
	for _, obj := range w.Objects() {
		text := bystander
		for i, p := range perspectives {
			if p == socials.Object(obj) {
				text = strs[i]
				break
			}
		}
		delivered += w.Bus.Emit(Event{
			Type:      kind,
			Recipient: obj,
			Source:    actor,
			Social:    social,
			Text:      text,
		})
	}
	w.Metrics.delivered(delivered)
	return nil
}
