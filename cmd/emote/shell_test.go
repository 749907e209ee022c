package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/crystal-mush/mushemote/pkg/config"
)

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	w, err := buildWorld(config.DefaultConf())
	if err != nil {
		t.Fatalf("buildWorld: %v", err)
	}
	var out bytes.Buffer
	return NewShell(w, w.Find("Bill"), &out), &out
}

func TestShellEmote(t *testing.T) {
	sh, out := newTestShell(t)
	sh.Exec(":% grin%s at {jane}.")

	want := "[Bill]: you grin at Jane.\n" +
		"[Jane]: Bill grins at you.\n" +
		"[Alice]: Bill grins at Jane.\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestShellSocial(t *testing.T) {
	sh, out := newTestShell(t)
	sh.Exec("poke jane")
	if !strings.Contains(out.String(), "[Jane]: Bill pokes you in your ribs.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	sh.Exec("social hug me")
	if !strings.Contains(out.String(), "[Bill]: You hug you tightly.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	sh.Exec("hug nobody")
	if !strings.Contains(out.String(), `I don't see "nobody" here.`) {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestShellErrors(t *testing.T) {
	sh, out := newTestShell(t)
	tests := []struct {
		cmd  string
		want string
	}{
		{":% waves at {zed}.", `Error: emote: no match for "zed"`},
		{"emote %3n", "Error: emote: 3 is not in the list of objects"},
		{"emote %xyzzy", "Error: emote: xyzzy is not a valid suffix."},
		{"smile", "Error: social: 2 is not in the list of objects"},
		{"dance", `Huh?  (Type "help" for help.)`},
	}
	for _, tt := range tests {
		out.Reset()
		sh.Exec(tt.cmd)
		if !strings.Contains(out.String(), tt.want) {
			t.Errorf("%q: got %q, want it to contain %q", tt.cmd, out.String(), tt.want)
		}
	}
}

func TestShellSwitchActor(t *testing.T) {
	sh, out := newTestShell(t)
	sh.Exec("as ali")
	if sh.Actor.Name() != "Alice" {
		t.Fatalf("actor = %s", sh.Actor.Name())
	}
	out.Reset()
	sh.Exec(":%N wave%s.")
	if !strings.Contains(out.String(), "[Bill]: Alice waves.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	sh.Exec("as nobody")
	if sh.Actor.Name() != "Alice" {
		t.Errorf("actor changed to %s", sh.Actor.Name())
	}
}

func TestShellMute(t *testing.T) {
	sh, out := newTestShell(t)
	sh.Exec("mute jane")
	if !strings.Contains(out.String(), "Jane muted.") {
		t.Fatalf("mute output:\n%s", out.String())
	}

	out.Reset()
	sh.Exec(":% grin%s at {jane}.")
	want := "[Bill]: you grin at Jane.\n" +
		"[Alice]: Bill grins at Jane.\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}

	out.Reset()
	sh.Exec("look")
	if !strings.Contains(out.String(), "#1 Jane [female] (muted)") {
		t.Errorf("look output:\n%s", out.String())
	}

	out.Reset()
	sh.Exec("mute jane")
	if !strings.Contains(out.String(), "No change for Jane.") {
		t.Errorf("second mute output:\n%s", out.String())
	}

	out.Reset()
	sh.Exec("unmute jane")
	sh.Exec("wave")
	if !strings.Contains(out.String(), "Jane unmuted.") || !strings.Contains(out.String(), "[Jane]: Bill waves.") {
		t.Errorf("unmute output:\n%s", out.String())
	}

	out.Reset()
	sh.Exec("mute nobody")
	if !strings.Contains(out.String(), `I don't see "nobody" here.`) {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestShellListings(t *testing.T) {
	sh, out := newTestShell(t)
	sh.Exec("look")
	if !strings.Contains(out.String(), "#0 Bill [male] (you)") {
		t.Errorf("look output:\n%s", out.String())
	}

	out.Reset()
	sh.Exec("suffixes")
	if !strings.Contains(out.String(), "n, name") {
		t.Errorf("suffixes output:\n%s", out.String())
	}

	out.Reset()
	sh.Exec("socials")
	if !strings.Contains(out.String(), "poke") {
		t.Errorf("socials output:\n%s", out.String())
	}

	out.Reset()
	sh.Exec("wave")
	sh.Exec("stats")
	if !strings.Contains(out.String(), `mushemote_emotes_total{kind="social"} 1`) {
		t.Errorf("stats output:\n%s", out.String())
	}

	if !sh.Exec("quit") {
		t.Error("quit should end the shell")
	}
}

func TestRunBatch(t *testing.T) {
	sh, out := newTestShell(t)
	runBatch(sh, strings.NewReader("# comment\n\nwave\nquit\n:never runs\n"))
	got := out.String()
	if !strings.Contains(got, "Bill> wave\n") || !strings.Contains(got, "[Jane]: Bill waves.") {
		t.Errorf("unexpected output:\n%s", got)
	}
	if strings.Contains(got, "never runs") {
		t.Error("batch continued after quit")
	}
}

func TestReloadKeepsSocialsOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emote.yaml")
	if err := os.WriteFile(path, []byte("socials:\n  nod: \"%N nod%s.\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sh, _ := newTestShell(t)

	reload(sh.World, path)
	if names := sh.World.SocialNames(); len(names) != 1 || names[0] != "nod" {
		t.Fatalf("socials after reload = %v", names)
	}

	if err := os.WriteFile(path, []byte("default_index: -4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	reload(sh.World, path)
	if names := sh.World.SocialNames(); len(names) != 1 || names[0] != "nod" {
		t.Errorf("bad config replaced socials: %v", names)
	}
}

func TestWatchConfReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emote.yaml")
	if err := os.WriteFile(path, []byte("socials:\n  nod: \"%N nod%s.\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sh, _ := newTestShell(t)
	stop, err := watchConf(sh.World, path, nil)
	if err != nil {
		t.Skipf("file watching unavailable: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("socials:\n  bow: \"%N bow%s.\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := sh.World.SocialTemplate("bow"); ok {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("socials were not reloaded after the config changed")
}
