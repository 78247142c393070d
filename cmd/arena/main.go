package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	classes := flag.String("enemies", "samurai", "comma-separated enemy classes to spawn")
	seed := flag.Int64("seed", 1, "AI random seed")
	watch := flag.Bool("watch", true, "hot reload prefabs/ on change")
	debug := flag.Bool("debug", false, "log encounter diagnostics")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("parrycore arena")
	ebiten.SetTPS(tps)

	game, err := NewGame(splitClasses(*classes), *seed, *watch, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func splitClasses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
