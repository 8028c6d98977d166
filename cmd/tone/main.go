// Command tone writes a sine test-signal WAV at the card's native 44.1 kHz
// rate, for loopback checks of the audio path after bring-up.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/zcz3/soc"
)

func main() {
	var (
		freq      float64
		seconds   float64
		channels  int
		amplitude float64
	)

	flag.Float64Var(&freq, "freq", 440, "Sine frequency in Hz")
	flag.Float64Var(&seconds, "duration", 5, "Signal duration in seconds")
	flag.IntVar(&channels, "channels", 2, "The amount of channels per frame")
	flag.Float64Var(&amplitude, "amplitude", 0.5, "Amplitude, 0.0 to 1.0")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <wav-file>\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if amplitude < 0 || amplitude > 1 {
		fmt.Fprintln(os.Stderr, "Error: amplitude must be within [0, 1]")
		os.Exit(1)
	}

	rate := int(soc.FrameRate)
	frames := int(seconds * float64(rate))

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
		Data:           make([]int, frames*channels),
	}

	scale := amplitude * float64(math.MaxInt16)
	for i := 0; i < frames; i++ {
		sample := int(scale * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
		for ch := 0; ch < channels; ch++ {
			buf.Data[i*channels+ch] = sample
		}
	}

	out, err := os.Create(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}

	enc := wav.NewEncoder(out, rate, 16, channels, 1)
	if err := enc.Write(buf); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV data: %v\n", err)
		_ = out.Close()
		os.Exit(1)
	}

	if err := enc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error finalizing WAV file: %v\n", err)
		_ = out.Close()
		os.Exit(1)
	}

	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing output file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d frames at %d Hz to %s\n", frames, rate, flag.Arg(0))
}
