// Command dmxsim runs a transmit engine into a receive engine on the
// simulation bench and prints the line waveform and the received universe.
//
//	dmxsim -channels 8 -values 10,20,30 -frames 3 -latency 20us
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/tinygo-org/dmx/dmx"
	"github.com/tinygo-org/dmx/dmx/dmxsim"
)

var (
	channels = flag.Int("channels", 8, "universe size")
	values   = flag.String("values", "", "comma separated values for channels 1, 2, ...")
	frames   = flag.Int("frames", 1, "frames to receive before stopping")
	period   = flag.Duration("period", 0, "frame period, 0 for the shortest period the universe allows")
	latency  = flag.Duration("latency", 0, "receive interrupt latency")
	trace    = flag.Bool("trace", true, "print the line waveform")
)

func parseValues(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	var out []byte
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 0, 8)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", f, err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

func run() error {
	vals, err := parseValues(*values)
	if err != nil {
		return err
	}
	p := *period
	if p == 0 {
		p = dmx.MinFramePeriod(*channels)
	}

	b := dmxsim.NewBench()
	b.SetLatency(*latency)
	tx, err := b.Attach(dmx.Config{
		Direction: dmx.Transmit,
		Channels:  *channels,
		Period:    p,
	})
	if err != nil {
		return fmt.Errorf("transmitter: %w", err)
	}
	rx, err := b.Attach(dmx.Config{
		Pin:          1,
		Direction:    dmx.Receive,
		Channels:     *channels,
		StateMachine: 1,
		DMAChannel:   1,
	})
	if err != nil {
		return fmt.Errorf("receiver: %w", err)
	}
	if err := tx.SetChannels(1, vals); err != nil {
		return fmt.Errorf("values: %w", err)
	}

	rx.Start()
	tx.Start()
	want := uint32(*frames)
	limit := time.Duration(*frames+1) * p
	if !b.RunUntil(func() bool { return rx.Frames() >= want }, limit) {
		glog.Warningf("received %d of %d frames in %v", rx.Frames(), want, limit)
	}
	tx.Stop()
	rx.Close()
	glog.Infof("simulated %v, %d frames sent, %d received, %d framing errors",
		b.Elapsed(), tx.Frames(), rx.Frames(), rx.Receiver().FramingErrors())

	if *trace {
		for _, s := range b.Trace.Segments() {
			glog.V(2).Infof("%v", s)
		}
		fmt.Println(b.Trace.String())
	}
	fmt.Print(rx.String())
	return nil
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if err := run(); err != nil {
		glog.Errorf("dmxsim: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}
