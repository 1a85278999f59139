// Command gintendo runs an iNES mapper-0 ROM, presenting it through
// an ebiten window and reading controller input from the keyboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"sync"

	"github.com/bdwalton/gintendo/cartridge"
	"github.com/bdwalton/gintendo/console"
	"github.com/bdwalton/gintendo/nesrom"
	"github.com/bdwalton/gintendo/pad"
	"github.com/bdwalton/gintendo/ppu"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	romFile = flag.String("nes_rom", "", "Path to NES ROM to run.")
	nestest = flag.Bool("nestest", false, "Run the nestest.nes golden-log harness: pin PC=0xC000, disable NMI/IRQ, print a per-instruction trace instead of opening a window.")
)

// keyBits maps ebiten keys to the pad package's button bit order: A,
// B, Select, Start, Up, Down, Left, Right.
var keyBits = []struct {
	key ebiten.Key
	bit uint8
}{
	{ebiten.KeyA, pad.A},
	{ebiten.KeyB, pad.B},
	{ebiten.KeySpace, pad.Select},
	{ebiten.KeyEnter, pad.Start},
	{ebiten.KeyUp, pad.Up},
	{ebiten.KeyDown, pad.Down},
	{ebiten.KeyLeft, pad.Left},
	{ebiten.KeyRight, pad.Right},
}

func pollKeyboard() uint8 {
	var state uint8
	for _, kb := range keyBits {
		if ebiten.IsKeyPressed(kb.key) {
			state |= kb.bit
		}
	}
	return state
}

// game adapts console.Bus to ebiten.Game: the bus's driver loop runs
// in its own goroutine and hands completed frames over through a
// mutex-guarded pointer; Update never blocks on the emulation.
type game struct {
	bus *console.Bus

	mu    sync.Mutex
	frame *console.Frame
}

func newGame(cart *cartridge.Cartridge) *game {
	g := &game{}
	g.bus = console.New(cart, pollKeyboard, func() uint8 { return 0 })
	g.bus.CPU().Reset()
	return g
}

func (g *game) Layout(w, h int) (int, int) {
	return ppu.NES_RES_WIDTH, ppu.NES_RES_HEIGHT
}

func (g *game) Update() error {
	// The emulation runs in its own goroutine; ebiten still requires
	// this method to exist.
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	frame := g.frame
	g.mu.Unlock()
	if frame == nil {
		return
	}

	img := ppu.Render(frame)
	for y := 0; y < ppu.NES_RES_HEIGHT; y++ {
		for x := 0; x < ppu.NES_RES_WIDTH; x++ {
			c := img[y][x]
			screen.Set(x, y, rgbaOf(c))
		}
	}
}

func rgbaOf(c ppu.RGB) color.RGBA {
	return color.RGBA{c[0], c[1], c[2], 0xff}
}

func (g *game) onFrame(f *console.Frame) {
	g.mu.Lock()
	g.frame = f
	g.mu.Unlock()
}

func main() {
	flag.Parse()

	rom, err := nesrom.New(*romFile)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	cart := cartridge.New(rom.PrgBytes(), rom.ChrBytes(), cartridge.Mirroring(rom.MirroringMode()))

	if *nestest {
		runNestest(cart)
		return
	}

	g := newGame(cart)

	ctx, cancel := context.WithCancel(context.Background())
	go g.bus.Run(ctx, g.onFrame)

	ebiten.SetWindowSize(ppu.NES_RES_WIDTH*2, ppu.NES_RES_HEIGHT*2)
	ebiten.SetWindowTitle("Gintendo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}

	cancel()
	os.Exit(0)
}

// runNestest executes the golden-log scenario from spec.md §8.6:
// pin PC=0xC000, disable interrupt servicing, and print a per-
// instruction trace of (PC, A, X, Y, P, SP) for the canonical 8991
// instructions nestest.nes executes in automated mode. nestest's own
// log file isn't part of this repo, so this prints the trace for a
// manual diff rather than asserting against it in-process.
func runNestest(cart *cartridge.Cartridge) {
	b := console.New(cart, func() uint8 { return 0 }, func() uint8 { return 0 })
	cpu := b.CPU()
	cpu.Reset()
	cpu.SetPC(0xC000)
	cpu.DisableInterrupts = true

	const instructionCount = 8991
	for i := 0; i < instructionCount; i++ {
		fmt.Printf("%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X\n",
			cpu.PC, cpu.A, cpu.X, cpu.Y, cpu.P, cpu.SP)
		b.Step()
	}
}
