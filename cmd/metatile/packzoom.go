package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"
)

type packZoomCmd struct {
	pattern string
	zoom    uint
	quiet   bool
}

func (c *packZoomCmd) Name() string     { return "packzoom" }
func (c *packZoomCmd) Synopsis() string { return "pack every complete block at one zoom level" }
func (c *packZoomCmd) Usage() string {
	return "metatile packzoom -p <pattern> -z <zoom>\n"
}
func (c *packZoomCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pattern, "p", "", "Tile file pattern (e.g. /var/tiles/{z}/{x}/{y}.png)")
	f.UintVar(&c.zoom, "z", 0, "Zoom level to pack")
	f.BoolVar(&c.quiet, "q", true, "Only log warnings and errors")
}

func (c *packZoomCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	store, err := newStore(c.pattern, c.quiet)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	packed, err := store.PackZoom(uint32(c.zoom))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	log.Printf("packed %d metatiles at zoom %d", packed, c.zoom)
	return subcommands.ExitSuccess
}
