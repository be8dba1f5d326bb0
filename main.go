// main.go - Command line front-end for the exponential engine

package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

func main() {
	addLat := flag.Int("alat", DEFAULT_FPADD_LATENCY, "add unit latency in cycles")
	mulLat := flag.Int("mlat", DEFAULT_FPMUL_LATENCY, "multiply unit latency in cycles")
	rawBits := flag.Bool("bits", false, "treat arguments as hex FP32 encodings")
	trace := flag.Bool("trace", false, "print handshake trace events")
	monitor := flag.Bool("monitor", false, "enter the interactive monitor")
	script := flag.String("script", "", "run a Lua script instead of evaluating arguments")
	flag.Parse()

	machine, err := NewMachine(*addLat, *mulLat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ExpEngine: %v\n", err)
		os.Exit(1)
	}
	if *trace {
		machine.Engine.Trace = func(line string) { fmt.Println(line) }
	}

	switch {
	case *monitor:
		if err := NewMachineMonitor(machine).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "ExpEngine: %v\n", err)
			os.Exit(1)
		}

	case *script != "":
		host := NewScriptHost(machine)
		defer host.Close()
		if err := host.RunFile(*script); err != nil {
			fmt.Fprintf(os.Stderr, "ExpEngine: script: %v\n", err)
			os.Exit(1)
		}

	default:
		if flag.NArg() == 0 {
			fmt.Fprintln(os.Stderr, "usage: ExpEngine [flags] value [value ...]")
			flag.PrintDefaults()
			os.Exit(2)
		}
		// Evaluations run strictly one at a time, in argument order.
		for _, arg := range flag.Args() {
			xBits, err := parseOperand(arg, *rawBits)
			if err != nil {
				fmt.Fprintf(os.Stderr, "ExpEngine: %v\n", err)
				os.Exit(1)
			}
			machine.Bus.Write32(EXP_OPERAND, xBits)
			machine.Bus.Write32(EXP_CTRL, EXP_CTRL_START)
			cycles := machine.RunUntilReady()
			result := machine.Bus.Read32(EXP_RESULT)
			fmt.Printf("exp(%v) = %v  [%08X]  (%d cycles)\n",
				math.Float32frombits(xBits), math.Float32frombits(result), result, cycles)
		}
	}
}

func parseOperand(arg string, rawBits bool) (uint32, error) {
	if rawBits {
		bits, err := strconv.ParseUint(strings.TrimPrefix(arg, "0x"), 16, 32)
		if err != nil {
			return 0, fmt.Errorf("bad encoding %q: %w", arg, err)
		}
		return uint32(bits), nil
	}
	val, err := strconv.ParseFloat(arg, 32)
	if err != nil {
		return 0, fmt.Errorf("bad value %q: %w", arg, err)
	}
	return math.Float32bits(float32(val)), nil
}
