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

type exportCmd struct {
	pattern    string
	outputPath string
	format     string
}

func (c *exportCmd) Name() string     { return "export" }
func (c *exportCmd) Synopsis() string { return "export the tile tree to an MBTiles file" }
func (c *exportCmd) Usage() string {
	return "metatile export -p <pattern> -o <path.mbtiles> [-f <format>]\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pattern, "p", "", "Tile file pattern (e.g. /var/tiles/{z}/{x}/{y}.png)")
	f.StringVar(&c.outputPath, "o", "", "Output MBTiles path")
	f.StringVar(&c.format, "f", "png", "Tile format metadata (png, jpg, webp, pbf)")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	store, err := newStore(c.pattern, true)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	writer, err := mb.NewWriter(c.outputPath, mb.WithMetadata(map[string]string{
		"name":   c.outputPath,
		"format": c.format,
	}))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer writer.Close()

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = store.VisitTiles(func(tileID tile.ID, tileData []byte) error {
		err := writer.WriteTile(tileID, tileData)
		bar.Add(1)
		return err
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
