package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"
)

type packCmd struct {
	pattern string
	quiet   bool
}

func (c *packCmd) Name() string     { return "pack" }
func (c *packCmd) Synopsis() string { return "pack rendered tiles into metatile containers" }
func (c *packCmd) Usage() string {
	return "metatile pack -p <pattern> <tile-file>...\n" +
		"  Packs the block of each named tile, once per block: only the\n" +
		"  block's top-left member triggers a pack, so it is safe to pass\n" +
		"  every rendered tile file.\n"
}
func (c *packCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pattern, "p", "", "Tile file pattern (e.g. /var/tiles/{z}/{x}/{y}.png)")
	f.BoolVar(&c.quiet, "q", false, "Only log warnings and errors")
}

func (c *packCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	store, err := newStore(c.pattern, c.quiet)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, name := range f.Args() {
		if err := store.ProcessPack(name); err != nil {
			log.Printf("%v: %v", name, err)
			status = subcommands.ExitFailure
		}
	}
	return status
}
