// Command cardup brings up the machine sound card from a board description:
// it attaches the card over I2C, registers it (forcing the codec quiet), and
// can optionally exercise one full stream lifecycle as a hardware check.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/zcz3/soc"
)

func main() {
	var (
		boardPath string
		exercise  bool
		check     bool
		verbose   bool
	)

	flag.StringVar(&boardPath, "board", "board.yaml", "Path to the YAML board description")
	flag.BoolVar(&exercise, "exercise", false, "Run one stream lifecycle (params, start, stop) after registration")
	flag.BoolVar(&check, "check", false, "Verify the card is listed under /proc/asound")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.Parse()

	if verbose {
		soc.Logger = soc.Logger.Level(zerolog.DebugLevel)
	}

	board, err := soc.LoadBoardInfo(boardPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading board description: %v\n", err)
		os.Exit(1)
	}

	provider := &soc.I2CProvider{}
	defer provider.Close()

	card, err := soc.Attach(board, provider)
	if err != nil {
		if errors.Is(err, soc.ErrProbeDefer) {
			fmt.Fprintf(os.Stderr, "Device not ready, retry later: %v\n", err)
			os.Exit(2)
		}

		fmt.Fprintf(os.Stderr, "Error attaching card: %v\n", err)
		os.Exit(1)
	}

	if err := card.Register(); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering card: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(card.String())

	if exercise {
		if err := exerciseStream(card); err != nil {
			fmt.Fprintf(os.Stderr, "Stream exercise failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Stream lifecycle OK")
	}

	if check {
		found, err := soc.FindCard(soc.ProcAsound, card.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Card check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registered as card %d\n", found.ID)
	}
}

// exerciseStream runs one parameter negotiation, start and stop, leaving the
// codec quiet again afterwards.
func exerciseStream(card *soc.Card) error {
	params := &soc.StreamParams{Rate: soc.FrameRate, Channels: 2}

	if err := card.Link.HwParams(params); err != nil {
		return err
	}

	if err := card.Link.Startup(); err != nil {
		return err
	}

	card.Link.Shutdown()

	return nil
}
