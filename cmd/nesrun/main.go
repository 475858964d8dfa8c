package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v2"

	"nesgo/apu"
	"nesgo/bus"
	"nesgo/cpu"
	"nesgo/disasm"
	"nesgo/ines"
	"nesgo/mapper"
	"nesgo/ppu"
)

// flatMemory is a plain 64 KiB address space for -raw mode, where there is
// no cartridge/PPU/APU to wire through a real Bus.
type flatMemory [65536]uint8

func newFlatMemory() *flatMemory { return &flatMemory{} }

func (m *flatMemory) Read(addr uint16) uint8     { return m[addr] }
func (m *flatMemory) Write(addr uint16, v uint8) { m[addr] = v }

func (m *flatMemory) setResetVector(addr uint16) {
	m[0xFFFC] = uint8(addr)
	m[0xFFFD] = uint8(addr >> 8)
}

func main() {
	app := &cli.App{
		Name:    "nesrun",
		Usage:   "run a 6502 program against the CPU core, headless",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rom",
				Aliases: []string{"r"},
				Usage:   "iNES file to load",
			},
			&cli.StringFlag{
				Name:  "raw",
				Usage: "flat binary to load at -load-addr instead of an iNES file",
			},
			&cli.IntFlag{
				Name:  "load-addr",
				Usage: "load address for -raw",
				Value: 0x8000,
			},
			&cli.IntFlag{
				Name:  "cycles",
				Usage: "stop after this many cycles (0 = unlimited, use -instrs instead)",
			},
			&cli.IntFlag{
				Name:  "instrs",
				Usage: "stop after this many instructions (0 = unlimited, use -cycles instead)",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print a disassembly line before each instruction",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	rawPath := c.String("raw")
	if romPath == "" && rawPath == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("one of -rom or -raw is required", 86)
	}

	var chip *cpu.Chip
	var mem bus.Memory

	switch {
	case romPath != "":
		f, err := os.Open(romPath)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer f.Close()

		cart, err := ines.Load(f)
		if err != nil {
			return cli.Exit(err, 1)
		}
		nrom := mapper.NewNROM(cart)
		// The Chip doesn't exist until after the Bus is built, so its IRQ/NMI
		// lines aren't available yet to hand to the collaborators here; a
		// headless run has no real interrupt source driving them anyway.
		b := bus.New(nrom, ppu.NewStub(nil), apu.NewStub(nil))
		mem = b
		chip = cpu.New(b)

	default:
		raw, err := os.ReadFile(rawPath)
		if err != nil {
			return cli.Exit(err, 1)
		}
		flat := newFlatMemory()
		loadAddr := uint16(c.Int("load-addr"))
		copy(flat[loadAddr:], raw)
		flat.setResetVector(loadAddr)
		mem = flat
		chip = cpu.New(flat)
	}

	chip.Reset()

	cycleLimit := c.Int("cycles")
	instrLimit := c.Int("instrs")
	trace := c.Bool("trace")

	instrs := 0
	for {
		if cycleLimit > 0 && int(chip.Cycles()) >= cycleLimit {
			break
		}
		if instrLimit > 0 && instrs >= instrLimit {
			break
		}

		if trace {
			pc := chip.Registers().PC
			line, _ := disasm.Line(mem, pc)
			fmt.Printf("%04X  %s\n", pc, line)
		}

		if _, err := chip.Step(); err != nil {
			return cli.Exit(err, 1)
		}
		instrs++
	}

	reg := chip.Registers()
	fmt.Printf("halted: PC=%04X A=%02X X=%02X Y=%02X P=%02X SP=%02X CYC=%d\n",
		reg.PC, reg.A, reg.X, reg.Y, reg.P, reg.SP, chip.Cycles())
	return nil
}
