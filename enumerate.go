package soc

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ProcAsound is the default location of the kernel's sound card listing.
const ProcAsound = "/proc/asound"

// SoundCardDevice represents a single PCM device on a registered sound card.
type SoundCardDevice struct {
	ID          int
	Description string
	IsPlayback  bool // True for playback, false for capture
}

// String returns a human-readable representation of the SoundCardDevice.
func (d SoundCardDevice) String() string {
	direction := "Capture"
	if d.IsPlayback {
		direction = "Playback"
	}

	return fmt.Sprintf("  Device %d: %s [%s]", d.ID, d.Description, direction)
}

// SoundCard represents a sound card the kernel has registered.
type SoundCard struct {
	ID          int
	Name        string
	Description string
	Devices     []SoundCardDevice
}

// String returns a human-readable representation of the SoundCard.
func (c SoundCard) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Card %d: %s (%s)\n", c.ID, c.Name, c.Description))
	for _, dev := range c.Devices {
		sb.WriteString(dev.String() + "\n")
	}

	return sb.String()
}

var (
	cardRegex = regexp.MustCompile(`^\s*(\d+)\s+\[\s*([^]]*?)\s*\]:\s*(.*)`)
	// Parses lines like "02-00: Loopback PCM : Loopback PCM : playback 8 : capture 8".
	pcmRegex = regexp.MustCompile(`^(\d+)-(\d+): (.*?) :.*`)
)

// EnumerateCards scans the kernel's sound listing under procRoot (normally
// ProcAsound) for all registered cards and their PCM devices. It is used to
// confirm the machine card actually registered with the subsystem.
func EnumerateCards(procRoot string) ([]SoundCard, error) {
	cardsFile := filepath.Join(procRoot, "cards")
	cardsContent, err := os.ReadFile(cardsFile)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", cardsFile, err)
	}

	cardMap := make(map[int]*SoundCard)

	for _, line := range strings.Split(string(cardsContent), "\n") {
		matches := cardRegex.FindStringSubmatch(line)
		if len(matches) != 4 {
			continue
		}

		id, err := strconv.Atoi(matches[1])
		if err != nil {
			continue
		}

		cardMap[id] = &SoundCard{
			ID:          id,
			Name:        strings.TrimSpace(matches[2]),
			Description: strings.TrimSpace(matches[3]),
		}
	}

	pcmFile := filepath.Join(procRoot, "pcm")
	pcmContent, err := os.ReadFile(pcmFile)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", pcmFile, err)
	}

	for _, line := range strings.Split(string(pcmContent), "\n") {
		matches := pcmRegex.FindStringSubmatch(line)
		if len(matches) < 4 {
			continue
		}

		cardID, _ := strconv.Atoi(matches[1])
		devID, _ := strconv.Atoi(matches[2])

		card, ok := cardMap[cardID]
		if !ok {
			continue
		}

		description := strings.TrimSpace(matches[3])

		// A single PCM device can expose both playback and capture streams;
		// each capability becomes its own SoundCardDevice.
		if strings.Contains(line, "playback") {
			card.Devices = append(card.Devices, SoundCardDevice{
				ID:          devID,
				Description: description,
				IsPlayback:  true,
			})
		}

		if strings.Contains(line, "capture") {
			card.Devices = append(card.Devices, SoundCardDevice{
				ID:          devID,
				Description: description,
				IsPlayback:  false,
			})
		}
	}

	var cardIDs []int
	for id := range cardMap {
		cardIDs = append(cardIDs, id)
	}

	sort.Ints(cardIDs)

	result := make([]SoundCard, 0, len(cardIDs))
	for _, id := range cardIDs {
		result = append(result, *cardMap[id])
	}

	return result, nil
}

// FindCard looks up a registered card by name under procRoot.
func FindCard(procRoot, name string) (*SoundCard, error) {
	cards, err := EnumerateCards(procRoot)
	if err != nil {
		return nil, err
	}

	for i := range cards {
		if cards[i].Name == name {
			return &cards[i], nil
		}
	}

	return nil, fmt.Errorf("card %q not registered", name)
}
