// Command givenergy-replay feeds a captured byte stream through the
// framer and plant update engine and prints what it decodes, mirroring
// scripts/replay.py from the original implementation: point a man-in-
// the-middle socat session or packet capture at a file, then replay it
// offline without a live device.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	givenergy "github.com/divenal/givenergy-modbus-go"
)

func main() {
	var verbose bool
	var chunkSize int

	flag.BoolVar(&verbose, "v", false, "print every decoded PDU, not just plant state changes")
	flag.IntVar(&chunkSize, "chunk-size", 300, "bytes read per Feed() call, as replay.py does")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-v] [-chunk-size N] <capture-file>\n", os.Args[0])
		os.Exit(2)
	}

	if err := replay(flag.Arg(0), chunkSize, verbose); err != nil {
		fmt.Fprintf(os.Stderr, "givenergy-replay: %v\n", err)
		os.Exit(1)
	}
}

func replay(path string, chunkSize int, verbose bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	logger := givenergy.NewLogger("replay")
	framer := givenergy.NewSnifferFramer(logger)

	plant := givenergy.NewPlant(logger)
	plant.Observers.RegistersUpdated = func(slave uint8, base givenergy.Register, values []uint16) {
		fmt.Printf("slave 0x%02x: %s base=%d count=%d\n", slave, base.Kind, base.Index, len(values))
	}
	plant.Observers.RegisterWritten = func(slave uint8, reg givenergy.Register, value uint16) {
		fmt.Printf("slave 0x%02x: wrote %s = %d\n", slave, reg, value)
	}
	plant.Observers.BatteryUpdated = func(index int, values []uint16) {
		fmt.Printf("discovered battery %d\n", index)
	}

	buf := make([]byte, chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			framer.Feed(buf[:n])
			drainFrames(framer, plant, verbose)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	fmt.Printf("inverter=%s adapter=%s batteries=%d\n",
		plant.InverterSerialNumber(), plant.DataAdapterSerialNumber(), plant.NumberBatteries())
	return nil
}

func drainFrames(framer *givenergy.Framer, plant *givenergy.Plant, verbose bool) {
	for {
		pdu, err := framer.Next()
		if err == givenergy.ErrNeedMoreData {
			return
		}
		if err != nil {
			fmt.Printf("frame error: %v\n", err)
			continue
		}
		if verbose {
			fmt.Printf("decoded %T\n", pdu)
		}
		plant.Apply(pdu)
	}
}
