package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/crystal-mush/mushemote/pkg/world"
)

// printer writes one object's messages as "[Name]: text".
type printer struct {
	out io.Writer
}

func (p *printer) Receive(ev world.Event) {
	fmt.Fprintf(p.out, "[%s]: %s\n", ev.Recipient.Name(), ev.Text)
}

// Shell interprets one line of input at a time on behalf of the current actor.
type Shell struct {
	World *world.World
	Actor *world.Object
	Out   io.Writer

	printers map[*world.Object]*printer
}

// NewShell creates a shell acting as actor and subscribes a printer to out
// for every object in the world.
func NewShell(w *world.World, actor *world.Object, out io.Writer) *Shell {
	s := &Shell{World: w, Actor: actor, Out: out, printers: make(map[*world.Object]*printer)}
	for _, obj := range w.Objects() {
		p := &printer{out: out}
		s.printers[obj] = p
		w.Bus.Subscribe(obj, p)
	}
	return s
}

// Exec runs one command. It returns true when the user asked to quit.
func (s *Shell) Exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ":") {
		s.report(s.World.Emote(s.Actor, strings.TrimSpace(line[1:])))
		return false
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true
	case "help":
		s.help()
	case "emote", "pose":
		s.report(s.World.Emote(s.Actor, rest))
	case "as":
		s.switchActor(rest)
	case "look":
		for _, obj := range s.World.Objects() {
			marker := ""
			if obj == s.Actor {
				marker = " (you)"
			}
			if s.World.Bus.Subscribers(obj) == 0 {
				marker += " (muted)"
			}
			fmt.Fprintf(s.Out, "#%d %s [%s]%s\n", obj.DBRef, obj.Name(), obj.Gender(), marker)
		}
	case "mute":
		s.mute(rest, true)
	case "unmute":
		s.mute(rest, false)
	case "socials":
		for _, name := range s.World.SocialNames() {
			tmpl, _ := s.World.SocialTemplate(name)
			fmt.Fprintf(s.Out, "%-10s %s\n", name, tmpl)
		}
	case "suffixes":
		for _, suffix := range s.World.Factory.Suffixes() {
			fmt.Fprintln(s.Out, strings.Join(suffix.Names, ", "))
		}
	case "stats":
		s.stats()
	case "social":
		name, targets, _ := strings.Cut(rest, " ")
		s.social(name, targets)
	default:
		if _, ok := s.World.SocialTemplate(cmd); ok {
			s.social(cmd, rest)
			return false
		}
		fmt.Fprintln(s.Out, `Huh?  (Type "help" for help.)`)
	}
	return false
}

func (s *Shell) social(name, targets string) {
	if name == "" {
		fmt.Fprintln(s.Out, "Usage: social <name> [target ...]")
		return
	}
	var objs []*world.Object
	for _, t := range strings.Fields(targets) {
		obj := s.World.Lookup(t)
		if strings.EqualFold(t, "me") {
			obj = s.Actor
		}
		if obj == nil {
			fmt.Fprintf(s.Out, "I don't see %q here.\n", t)
			return
		}
		objs = append(objs, obj)
	}
	s.report(s.World.Social(s.Actor, name, objs...))
}

func (s *Shell) switchActor(name string) {
	obj := s.World.Lookup(name)
	if obj == nil {
		fmt.Fprintf(s.Out, "I don't see %q here.\n", name)
		return
	}
	s.Actor = obj
	fmt.Fprintf(s.Out, "You are now %s.\n", obj.Name())
}

// mute stops or resumes printing what name sees.
func (s *Shell) mute(name string, on bool) {
	obj := s.World.Lookup(name)
	if obj == nil {
		fmt.Fprintf(s.Out, "I don't see %q here.\n", name)
		return
	}
	p, ok := s.printers[obj]
	if !ok {
		p = &printer{out: s.Out}
		s.printers[obj] = p
	}
	switch {
	case on && s.World.Bus.Unsubscribe(obj, p):
		fmt.Fprintf(s.Out, "%s muted.\n", obj.Name())
	case !on && s.World.Bus.Subscribers(obj) == 0:
		s.World.Bus.Subscribe(obj, p)
		fmt.Fprintf(s.Out, "%s unmuted.\n", obj.Name())
	default:
		fmt.Fprintf(s.Out, "No change for %s.\n", obj.Name())
	}
}

func (s *Shell) stats() {
	if s.World.Metrics == nil {
		fmt.Fprintln(s.Out, "Metrics are disabled.")
		return
	}
	lines, err := s.World.Metrics.Summary()
	if err != nil {
		s.report(err)
		return
	}
	for _, l := range lines {
		fmt.Fprintln(s.Out, l)
	}
}

func (s *Shell) report(err error) {
	if err != nil {
		fmt.Fprintf(s.Out, "Error: %v\n", err)
	}
}

func (s *Shell) help() {
	io.WriteString(s.Out, `Commands:
  :<text>, emote <text>    Emote. Use % for yourself and {name} for others,
                           e.g. ":% smile%s at {jane}."
  <social> [targets]       Perform a predefined social.
  social <name> [targets]  Same, for socials that shadow a command.
  as <name>                Act as someone else.
  look                     List everyone present.
  mute <name>              Stop showing what someone sees.
  unmute <name>            Show it again.
  socials                  List predefined socials.
  suffixes                 List suffixes usable after %.
  stats                    Show counters.
  quit                     Leave.
`)
}
