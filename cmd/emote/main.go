// Command emote plays emotes and socials between a few demo objects and
// prints what each of them sees.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/crystal-mush/mushemote/pkg/config"
	"github.com/crystal-mush/mushemote/pkg/socials"
	"github.com/crystal-mush/mushemote/pkg/world"
)

// envDefault returns the environment variable value if set, otherwise the fallback.
func envDefault(envVar, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}

func main() {
	confFile := flag.String("conf", envDefault("EMOTE_CONF", ""), "Path to emote config file, .yaml or text (env: EMOTE_CONF)")
	actor := flag.String("actor", envDefault("EMOTE_ACTOR", ""), "Name of the object to act as, defaults to the first (env: EMOTE_ACTOR)")
	batch := flag.String("batch", envDefault("EMOTE_BATCH", ""), "File with commands to run, one per line (env: EMOTE_BATCH)")
	expr := flag.String("e", "", "Single command to run (non-interactive mode)")
	watch := flag.Bool("watch", os.Getenv("EMOTE_WATCH") != "false", "Reload socials when the config file changes (env: EMOTE_WATCH)")
	flag.Parse()

	conf := config.DefaultConf()
	if *confFile != "" {
		var err error
		conf, err = config.LoadConf(*confFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		log.Printf("Loaded config from %s", *confFile)
	}

	w, err := buildWorld(conf)
	if err != nil {
		log.Fatalf("Error building world: %v", err)
	}

	me := w.Objects()[0]
	if *actor != "" {
		if me = w.Lookup(*actor); me == nil {
			log.Fatalf("No object named %q", *actor)
		}
	}
	sh := NewShell(w, me, os.Stdout)

	if *expr != "" {
		sh.Exec(*expr)
		return
	}

	if *batch != "" {
		f, err := os.Open(*batch)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening batch file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		runBatch(sh, f)
		return
	}

	if *watch && *confFile != "" {
		stop, err := watchConf(w, *confFile, conf.SocialFiles)
		if err != nil {
			log.Printf("WARNING: Could not watch config: %v", err)
		} else {
			defer stop()
		}
	}

	// Interactive mode
	fmt.Println("Emote test harness")
	fmt.Printf("Acting as %s. Type \"help\" for commands.\n", sh.Actor.Name())
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", sh.Actor.Name())
		if !scanner.Scan() {
			break
		}
		if sh.Exec(scanner.Text()) {
			break
		}
	}
}

// buildWorld creates the factory, applies conf and adds the configured
// objects and socials.
func buildWorld(conf *config.Conf) (*world.World, error) {
	f := socials.NewPopulated()
	if err := conf.Apply(f); err != nil {
		return nil, err
	}
	w := world.New(f, world.NewMetrics())
	for _, o := range conf.Objects {
		if _, err := w.Add(o.Name, o.Sex); err != nil {
			return nil, err
		}
	}
	if len(w.Objects()) == 0 {
		return nil, fmt.Errorf("no objects configured")
	}
	w.SetSocials(conf.Socials)
	return w, nil
}

// runBatch executes each non-comment line of r, echoing it first.
func runBatch(sh *Shell, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fmt.Fprintf(sh.Out, "%s> %s\n", sh.Actor.Name(), line)
		if sh.Exec(line) {
			return
		}
	}
}
