package soc

import (
	"github.com/rs/zerolog"
)

// Endpoint is an addressable hardware-facing device participating in the
// audio link: the CPU interface, the platform (DMA) side, or the codec.
type Endpoint struct {
	Node  *Node
	Clock ClockSetter
}

// CodecEndpoint is the codec side of a link: an endpoint plus the resolved
// DAI name and the register write primitive.
type CodecEndpoint struct {
	Endpoint

	DAIName string
	Regs    RegisterWriter
}

// LinkDescription identifies the three endpoints of one audio link and the
// codec function bound to it. It is created once during attach and is
// immutable afterward, owned exclusively by the card instance.
type LinkDescription struct {
	Name       string
	StreamName string
	Format     DaiFormat

	CPU      *Endpoint
	Platform *Endpoint
	Codec    *CodecEndpoint
}

// StreamParams carries the stream parameters proposed by the subsystem during
// negotiation. Only the sample rate is inspected by this driver.
type StreamParams struct {
	Rate     uint32
	Channels uint32
}

// Link is the stream sequencer for one audio link. It enforces the single
// supported sample rate and drives codec register snapshots across the stream
// lifecycle so that outputs are silent except while a stream is active.
//
// The surrounding audio subsystem serializes lifecycle calls for one link;
// Link performs no internal locking and assumes that guarantee.
type Link struct {
	desc  *LinkDescription
	state LinkState
	log   zerolog.Logger
}

func newLink(desc *LinkDescription, log zerolog.Logger) *Link {
	return &Link{
		desc:  desc,
		state: LINK_STATE_IDLE,
		log:   log,
	}
}

// Description returns the link's immutable description.
func (l *Link) Description() *LinkDescription {
	return l.desc
}

// State returns the link's current lifecycle state.
func (l *Link) State() LinkState {
	return l.state
}

// codecReady reports whether the link is fully formed with a programmable
// codec: all three endpoints populated and a register writer attached.
// An absent codec degrades the audio path but is not an error.
func (l *Link) codecReady() bool {
	d := l.desc

	return d.CPU != nil && d.Platform != nil && d.Codec != nil && d.Codec.Regs != nil
}

// setMclk issues the shared master clock to the CPU endpoint, then to the
// codec endpoint, both in output mode. It aborts on the first rejection and
// identifies the rejecting endpoint; the error is non-retryable at this layer.
func (l *Link) setMclk() error {
	if err := l.desc.CPU.Clock.SetSysclk(MclkID, MclkRate, SND_SOC_CLOCK_OUT); err != nil {
		l.log.Error().Err(err).Msg("cannot set cpu MCLK")

		return &ClockError{Endpoint: "cpu", Err: err}
	}

	if l.desc.Codec != nil && l.desc.Codec.Clock != nil {
		if err := l.desc.Codec.Clock.SetSysclk(MclkID, MclkRate, SND_SOC_CLOCK_OUT); err != nil {
			l.log.Error().Err(err).Msg("cannot set codec MCLK")

			return &ClockError{Endpoint: "codec", Err: err}
		}
	}

	return nil
}

// Init is the link-initialization callback, invoked once when the card is
// registered. It negotiates the master clock and forces the codec quiet, so
// outputs are silent from power-up until the first stream actually starts.
func (l *Link) Init() error {
	if err := l.setMclk(); err != nil {
		return err
	}

	if l.codecReady() {
		es8328Quiet.Apply(l.desc.Codec.Regs)
	}

	return nil
}

// HwParams applies proposed stream parameters. The sample rate must equal
// FrameRate exactly; any other value is rejected before any clock or register
// operation occurs and the link returns to Idle. On acceptance the master
// clock is re-negotiated, since the subsystem may have reset clocks between
// streams. On success the link moves to Negotiating.
func (l *Link) HwParams(params *StreamParams) error {
	l.state = LINK_STATE_NEGOTIATING

	if params == nil || params.Rate != FrameRate {
		l.state = LINK_STATE_IDLE

		return ErrUnsupportedRate
	}

	if err := l.setMclk(); err != nil {
		l.state = LINK_STATE_IDLE

		return err
	}

	return nil
}

// Startup moves the link to Active on stream start. The master clock is
// applied once more for link-initialization safety, then the full codec
// initialization snapshot un-mutes the outputs. A missing codec endpoint is
// tolerated: the stream still becomes Active with no codec programmed.
func (l *Link) Startup() error {
	if err := l.setMclk(); err != nil {
		l.state = LINK_STATE_IDLE

		return err
	}

	if l.codecReady() {
		es8328Active.Apply(l.desc.Codec.Regs)
	}

	l.state = LINK_STATE_ACTIVE

	return nil
}

// Shutdown quiesces the link on stream stop and returns it to Idle. The quiet
// snapshot is fire-and-forget: shutdown never blocks on hardware errors and
// exposes no failure path.
func (l *Link) Shutdown() {
	l.state = LINK_STATE_CLOSING

	if l.codecReady() {
		es8328Quiet.Apply(l.desc.Codec.Regs)
	}

	l.state = LINK_STATE_IDLE
}
