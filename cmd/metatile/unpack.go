package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"
)

type unpackCmd struct {
	pattern string
	quiet   bool
}

func (c *unpackCmd) Name() string     { return "unpack" }
func (c *unpackCmd) Synopsis() string { return "explode metatile containers back into tile files" }
func (c *unpackCmd) Usage() string {
	return "metatile unpack -p <pattern> <name>...\n" +
		"  Each name may be a container file or any tile file of its block.\n"
}
func (c *unpackCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pattern, "p", "", "Tile file pattern (e.g. /var/tiles/{z}/{x}/{y}.png)")
	f.BoolVar(&c.quiet, "q", false, "Only log warnings and errors")
}

func (c *unpackCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	store, err := newStore(c.pattern, c.quiet)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, name := range f.Args() {
		if err := store.Unpack(name); err != nil {
			log.Printf("%v: %v", name, err)
			status = subcommands.ExitFailure
		}
	}
	return status
}
