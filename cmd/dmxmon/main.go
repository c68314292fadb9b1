// Command dmxmon reads the frame dumps examples/rx writes to its USB serial
// port and prints every frame, or only the channels that changed.
//
//	dmxmon -port /dev/ttyACM0 -changes
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/tarm/serial"

	"github.com/tinygo-org/dmx/dmx"
)

var (
	port    = flag.String("port", "/dev/ttyACM0", "serial device")
	baud    = flag.Int("baud", 115200, "baud rate, ignored by USB CDC")
	timeout = flag.Duration("timeout", 100*time.Millisecond, "serial read timeout")
	changes = flag.Bool("changes", false, "print only channels that changed")
	count   = flag.Int("n", 0, "stop after n frames, 0 for no limit")
)

// timeoutReader turns the io.EOF a serial read timeout reports into an empty
// read, so an idle line does not end the stream.
type timeoutReader struct{ r io.Reader }

func (t timeoutReader) Read(b []byte) (int, error) {
	n, err := t.r.Read(b)
	if n == 0 && err == io.EOF {
		return 0, nil
	}
	return n, err
}

// monitor prints the frames read from r to w.
func monitor(r io.Reader, w io.Writer, onlyChanges bool, limit int) error {
	d := dmx.NewDumpReader(r)
	var prev []byte
	var lastSeq uint32
	for n := 0; limit == 0 || n < limit; n++ {
		seq, frame, err := d.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading dump: %w", err)
		}
		if n > 0 && seq != lastSeq+1 {
			glog.V(1).Infof("missed %d frames before %d", seq-lastSeq-1, seq)
		}
		lastSeq = seq
		if !onlyChanges || prev == nil {
			printFrame(w, seq, frame)
		} else {
			printChanges(w, seq, prev, frame)
		}
		prev = append(prev[:0], frame...)
	}
	if s := d.Skipped(); s > 0 {
		glog.Infof("skipped %d bytes while resynchronising", s)
	}
	return nil
}

func printFrame(w io.Writer, seq uint32, frame []byte) {
	fmt.Fprintf(w, "frame %d\n", seq)
	u, err := dmx.NewUniverse(len(frame) - 1)
	if err != nil {
		fmt.Fprintf(w, "Start code: %d\n", frame[0])
		return
	}
	copy(u.Bytes(), frame)
	fmt.Fprint(w, u)
}

func printChanges(w io.Writer, seq uint32, prev, frame []byte) {
	for c := 1; c < len(frame); c++ {
		if c >= len(prev) || prev[c] != frame[c] {
			fmt.Fprintf(w, "frame %d: channel %d = %d\n", seq, c, frame[c])
		}
	}
}

func run() error {
	p, err := serial.OpenPort(&serial.Config{
		Name:        *port,
		Baud:        *baud,
		ReadTimeout: *timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", *port, err)
	}
	defer p.Close()
	glog.Infof("reading frames from %s", *port)
	return monitor(timeoutReader{p}, os.Stdout, *changes, *count)
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if err := run(); err != nil {
		glog.Errorf("dmxmon: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}
