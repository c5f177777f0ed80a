package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ArthurLER/mod-tile/tile"
	"github.com/google/subcommands"
)

type readCmd struct {
	pattern    string
	tileName   string
	outputPath string
	bufferSize uint
}

func (c *readCmd) Name() string     { return "read" }
func (c *readCmd) Synopsis() string { return "read one tile, packed or standalone" }
func (c *readCmd) Usage() string {
	return "metatile read -p <pattern> -t <z/x/y> [-o <file>]\n"
}
func (c *readCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pattern, "p", "", "Tile file pattern (e.g. /var/tiles/{z}/{x}/{y}.png)")
	f.StringVar(&c.tileName, "t", "", "Tile coordinates as z/x/y")
	f.StringVar(&c.outputPath, "o", "", "Output file (default stdout)")
	f.UintVar(&c.bufferSize, "b", 1<<20, "Tile buffer size in bytes")
}

func parseTileName(name string) (tile.ID, error) {
	var x, y, z uint32
	if _, err := fmt.Sscanf(name, "%d/%d/%d", &z, &x, &y); err != nil {
		return tile.ID{}, fmt.Errorf("invalid tile %q: %w", name, err)
	}
	tileID := tile.ID{X: x, Y: y, Z: z}
	if !tileID.Valid() {
		return tile.ID{}, fmt.Errorf("invalid tile %q", name)
	}
	return tileID, nil
}

func (c *readCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	tileID, err := parseTileName(c.tileName)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	store, err := newStore(c.pattern, true)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	buf := make([]byte, c.bufferSize)
	n, err := store.ReadTile(tileID, buf)
	if err != nil {
		log.Printf("%v: %v", c.tileName, err)
		return subcommands.ExitFailure
	}

	output := os.Stdout
	if c.outputPath != "" {
		output, err = os.Create(c.outputPath)
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		defer output.Close()
	}

	if _, err := output.Write(buf[:n]); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
