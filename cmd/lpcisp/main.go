// Command lpcisp talks to the ISP boot ROM of an LPC2xxx target over a
// serial port: identify the part, read memory out to a file, unlock flash
// commands, or start execution at an address.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/akamensky/argparse"
	"github.com/jedib0t/go-pretty/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/moffa90/go-lpcisp/isp"
	"github.com/moffa90/go-lpcisp/serialport"
)

// zerologAdapter bridges the engine's Logger interface onto zerolog.
type zerologAdapter struct{}

func (zerologAdapter) Debug(msg string, kv ...interface{}) { log.Debug().Fields(kv).Msg(msg) }
func (zerologAdapter) Info(msg string, kv ...interface{})  { log.Info().Fields(kv).Msg(msg) }
func (zerologAdapter) Error(msg string, kv ...interface{}) { log.Error().Fields(kv).Msg(msg) }

func main() {
	args := argparse.NewParser("lpcisp", "NXP LPC2xxx ISP bootloader tool")

	port := args.String("p", "port", &argparse.Options{Required: true, Help: "Serial port device"})
	baud := args.Int("b", "baud", &argparse.Options{Required: false, Help: "Baud rate", Default: 115200})
	clock := args.Int("c", "clock", &argparse.Options{Required: false, Help: "Target crystal frequency in kHz", Default: 12000})
	twoStop := args.Flag("2", "two-stop-bits", &argparse.Options{Help: "Use two stop bits"})
	verbose := args.Flag("v", "verbose", &argparse.Options{Help: "Enable debug logging"})

	infoCmd := args.NewCommand("info", "Identify the connected part")

	readCmd := args.NewCommand("read", "Read target memory to a file")
	readAddr := readCmd.String("a", "address", &argparse.Options{Required: true, Help: "Start address (decimal or 0x hex), word-aligned"})
	readSize := readCmd.Int("s", "size", &argparse.Options{Required: true, Help: "Number of bytes to read, multiple of 4"})
	readOut := readCmd.String("o", "output", &argparse.Options{Required: true, Help: "Output file path"})

	goCmd := args.NewCommand("go", "Start execution at an address")
	goAddr := goCmd.String("a", "address", &argparse.Options{Required: true, Help: "Entry address (decimal or 0x hex), word-aligned"})
	goThumb := goCmd.Flag("t", "thumb", &argparse.Options{Help: "Start in Thumb state instead of ARM"})

	blankCmd := args.NewCommand("blankcheck", "Blank check a sector range")
	blankStart := blankCmd.Int("s", "start", &argparse.Options{Required: true, Help: "First sector"})
	blankEnd := blankCmd.Int("e", "end", &argparse.Options{Required: true, Help: "Last sector (inclusive)"})

	if err := args.Parse(os.Args); err != nil {
		fmt.Print(args.Usage(err))
		os.Exit(1)
	}

	configureLogging(*verbose)

	var portOpts []serialport.Option
	if *twoStop {
		portOpts = append(portOpts, serialport.WithTwoStopBits())
	}

	sp, err := serialport.Open(*port, *baud, portOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("open serial port")
	}
	defer sp.Close()

	dev := isp.New(sp,
		isp.WithTargetClock(*clock),
		isp.WithLogger(zerologAdapter{}),
		isp.WithProgressCallback(func(p isp.Progress) {
			log.Info().
				Int("received", p.Received).
				Int("total", p.Total).
				Int("blocks", p.Blocks).
				Msg("reading")
		}),
	)

	log.Info().Str("port", *port).Int("baud", *baud).Msg("synchronizing")
	if err := dev.Synchronize(); err != nil {
		log.Fatal().Err(err).Msg("synchronize")
	}

	switch {
	case infoCmd.Happened():
		err = runInfo(dev)
	case readCmd.Happened():
		err = runRead(dev, *readAddr, *readSize, *readOut)
	case goCmd.Happened():
		err = runGo(dev, *goAddr, *goThumb)
	case blankCmd.Happened():
		err = runBlankCheck(dev, *blankStart, *blankEnd)
	default:
		fmt.Print(args.Usage(nil))
		os.Exit(1)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("operation failed")
	}
}

// runInfo identifies the part and prints a summary table.
func runInfo(dev *isp.Device) error {
	id, err := dev.ReadPartID()
	if err != nil {
		return fmt.Errorf("read part id: %w", err)
	}

	version, err := dev.ReadBootCodeVersion()
	if err != nil {
		return fmt.Errorf("read boot code version: %w", err)
	}

	revision, err := dev.ReadPartRevision()
	if err != nil {
		return fmt.Errorf("read part revision: %w", err)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"Part", isp.PartName(id)})
	t.AppendRow(table.Row{"Part ID", fmt.Sprintf("0x%08X", id)})
	t.AppendRow(table.Row{"Revision", revision})
	t.AppendRow(table.Row{"Boot code", version})
	fmt.Println(t.Render())

	return nil
}

// runRead dumps a memory range to a file.
func runRead(dev *isp.Device, addrArg string, size int, out string) error {
	addr, err := parseAddr(addrArg)
	if err != nil {
		return err
	}

	start := time.Now()
	data, err := dev.ReadMemory(addr, uint32(size))
	if err != nil {
		return fmt.Errorf("read memory: %w", err)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	log.Info().
		Str("file", out).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("read complete")
	return nil
}

// runGo unlocks the target and starts execution.
func runGo(dev *isp.Device, addrArg string, thumb bool) error {
	addr, err := parseAddr(addrArg)
	if err != nil {
		return err
	}

	if err := dev.Unlock(); err != nil {
		return fmt.Errorf("unlock: %w", err)
	}

	mode := isp.ExecARM
	if thumb {
		mode = isp.ExecThumb
	}
	if err := dev.Go(addr, mode); err != nil {
		return fmt.Errorf("go: %w", err)
	}

	log.Info().Uint32("address", addr).Msg("target running")
	return nil
}

// runBlankCheck reports whether a sector range is blank.
func runBlankCheck(dev *isp.Device, start, end int) error {
	err := dev.BlankCheckSectors(start, end)
	if ce, ok := isp.IsCommandError(err); ok {
		log.Info().Str("code", ce.Code.String()).Msg("sectors not blank")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Int("start", start).Int("end", end).Msg("sectors blank")
	return nil
}

// parseAddr parses a decimal or 0x-prefixed address.
func parseAddr(s string) (uint32, error) {
	addr, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint32(addr), nil
}

// configureLogging sets up zerolog with a console writer.
func configureLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
