package soc

import (
	"fmt"
	"strings"
)

// CardName is the registered name of the machine card.
const CardName = "chamsys-pcm"

// WidgetType defines the kind of a user-visible audio endpoint widget.
// These values correspond to the SND_SOC_DAPM_* widget kinds used here.
type WidgetType int32

const (
	SND_SOC_DAPM_LINE WidgetType = 0
	SND_SOC_DAPM_HP   WidgetType = 1
	SND_SOC_DAPM_MIC  WidgetType = 2
	SND_SOC_DAPM_SPK  WidgetType = 3
)

// Widget is a user-visible named endpoint on the card ("Line out", "Line in").
type Widget struct {
	Name string
	Type WidgetType
}

// Route connects a sink to a source in the card's routing table, binding
// user-visible widgets to codec-internal nodes.
type Route struct {
	Sink   string
	Source string
}

// PinSwitch is the enable/disable switch exposed for a named endpoint.
type PinSwitch struct {
	Name    string
	enabled bool
}

// drvData is the per-card driver-owned scratch state, allocated with the
// card's lifetime.
type drvData struct {
	spare int
}

// DeviceProvider turns resolved board-description nodes into live device
// handles. A provider returns ErrProbeDefer when the referenced device exists
// but is not yet available; the caller may retry the attach later.
type DeviceProvider interface {
	// Clock returns the clock-set primitive for a node.
	Clock(node *Node) (ClockSetter, error)

	// CodecRegisters returns the register write primitive for a codec node.
	// A nil writer with a nil error means the codec cannot be programmed;
	// the card still attaches with a degraded audio path.
	CodecRegisters(node *Node) (RegisterWriter, error)
}

// Card is one machine sound card: exactly one link, the user-visible named
// endpoints with their enable switches, and the routing table binding them to
// codec-internal nodes. Created by Attach, destroyed by dropping the
// reference; the audio subsystem owns its registration lifetime.
type Card struct {
	Name    string
	Link    *Link
	Widgets []Widget
	Routes  []Route

	switches   map[string]*PinSwitch
	drvdata    *drvData
	registered bool
}

// Attach is the probe operation: it resolves the board-description bindings,
// acquires device handles from the provider, and builds the card. Each
// failure is terminal for this attach attempt; the caller may retry by
// calling Attach again (in particular after ErrProbeDefer).
func Attach(board *BoardInfo, provider DeviceProvider) (*Card, error) {
	desc, err := ResolveLink(board)
	if err != nil {
		return nil, err
	}

	cpuClock, err := provider.Clock(desc.CPU.Node)
	if err != nil {
		return nil, fmt.Errorf("cpu interface %q: %w", desc.CPU.Node.Label, err)
	}
	desc.CPU.Clock = cpuClock
	desc.Platform.Clock = cpuClock

	codecClock, err := provider.Clock(desc.Codec.Node)
	if err != nil {
		return nil, fmt.Errorf("codec %q: %w", desc.Codec.Node.Label, err)
	}
	desc.Codec.Clock = codecClock

	regs, err := provider.CodecRegisters(desc.Codec.Node)
	if err != nil {
		return nil, fmt.Errorf("codec %q: %w", desc.Codec.Node.Label, err)
	}
	desc.Codec.Regs = regs

	card := &Card{
		Name: CardName,
		Widgets: []Widget{
			{Name: "Line out", Type: SND_SOC_DAPM_LINE},
			{Name: "Line in", Type: SND_SOC_DAPM_LINE},
		},
		Routes: []Route{
			{Sink: "Line out", Source: "LOUT1"},
			{Sink: "LINPUT1", Source: "Line in"},
		},
		switches: map[string]*PinSwitch{
			"Line out": {Name: "Line out", enabled: true},
			"Line in":  {Name: "Line in", enabled: true},
		},
		drvdata: &drvData{},
	}

	card.Link = newLink(desc, Logger.With().Str("card", CardName).Logger())

	return card, nil
}

// Register completes card registration with the audio subsystem, running the
// link-initialization callback. Outputs are guaranteed silent from this point
// until the first stream actually starts.
func (c *Card) Register() error {
	if c.registered {
		return fmt.Errorf("card %s already registered", c.Name)
	}

	if err := c.Link.Init(); err != nil {
		return fmt.Errorf("soc register card failed: %w", err)
	}

	c.registered = true

	return nil
}

// Registered reports whether Register has completed successfully.
func (c *Card) Registered() bool {
	return c.registered
}

// SetPinEnabled flips the enable switch of a named endpoint.
func (c *Card) SetPinEnabled(name string, enable bool) error {
	sw, ok := c.switches[name]
	if !ok {
		return fmt.Errorf("control not found: %s", name)
	}

	sw.enabled = enable

	return nil
}

// PinEnabled returns the state of a named endpoint's enable switch.
func (c *Card) PinEnabled(name string) (bool, error) {
	sw, ok := c.switches[name]
	if !ok {
		return false, fmt.Errorf("control not found: %s", name)
	}

	return sw.enabled, nil
}

// String returns a human-readable representation of the card.
func (c *Card) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Card: %s\n", c.Name))
	sb.WriteString(fmt.Sprintf("  Link %s (%s), state %s\n",
		c.Link.desc.Name, c.Link.desc.StreamName, c.Link.State()))
	for _, w := range c.Widgets {
		enabled, _ := c.PinEnabled(w.Name)
		sb.WriteString(fmt.Sprintf("  Widget %q enabled=%v\n", w.Name, enabled))
	}
	for _, r := range c.Routes {
		sb.WriteString(fmt.Sprintf("  Route %q <- %q\n", r.Sink, r.Source))
	}

	return sb.String()
}
