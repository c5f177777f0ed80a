package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/ArthurLER/mod-tile/mb"
	"github.com/ArthurLER/mod-tile/tile"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type importCmd struct {
	pattern   string
	inputPath string
}

func (c *importCmd) Name() string     { return "import" }
func (c *importCmd) Synopsis() string { return "import an MBTiles file into the tile tree" }
func (c *importCmd) Usage() string {
	return "metatile import -p <pattern> -i <path.mbtiles>\n" +
		"  Tiles are written as standalone files; run packzoom afterwards\n" +
		"  to consolidate them.\n"
}
func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pattern, "p", "", "Tile file pattern (e.g. /var/tiles/{z}/{x}/{y}.png)")
	f.StringVar(&c.inputPath, "i", "", "Input MBTiles path")
}

func (c *importCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	store, err := newStore(c.pattern, true)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	reader, err := mb.NewReader(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer reader.Close()

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = reader.VisitTiles(func(tileID tile.ID, tileData []byte) error {
		err := store.WriteTile(tileID, tileData)
		bar.Add(1)
		return err
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
