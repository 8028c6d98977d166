// Package soc provides a user-space control plane for a board-level ("machine")
// sound card, modeled after the ASoC machine-driver layer: it binds a CPU-side
// audio interface and a codec from a board description, negotiates a shared
// master clock, and sequences codec register state across the stream lifecycle
// so that analog outputs stay silent except while a stream is active.
package soc

import "errors"

// Master clock configuration. The clock is fixed at 256x the single supported
// frame rate; no other rate is achievable without re-deriving the clock.
const (
	MclkRate  uint32 = 11289600
	MclkFS    uint32 = 256
	FrameRate uint32 = 44100
)

// MclkID is the clock id used for all SetSysclk requests. No other id is used.
const MclkID = 0

// ClockDirection defines whether an endpoint sources or consumes its clock.
// These values correspond to the SND_SOC_CLOCK_* constants.
type ClockDirection int32

const (
	SND_SOC_CLOCK_IN  ClockDirection = 0
	SND_SOC_CLOCK_OUT ClockDirection = 1
)

// DaiFormat defines the digital audio interface format flags for a link.
// These values correspond to the SND_SOC_DAIFMT_* constants.
type DaiFormat uint32

const (
	// Frame formats.
	SND_SOC_DAIFMT_I2S     DaiFormat = 1
	SND_SOC_DAIFMT_RIGHT_J DaiFormat = 2
	SND_SOC_DAIFMT_LEFT_J  DaiFormat = 3

	// Clock gating and polarity.
	SND_SOC_DAIFMT_NB_NF DaiFormat = 0 << 8

	// Clock provider. CBS_CFS: codec bit and frame clocks are consumed,
	// the CPU interface provides both (codec as slave).
	SND_SOC_DAIFMT_CBS_CFS DaiFormat = 4 << 12
)

// LinkState defines the lifecycle state of an audio link.
type LinkState int32

const (
	LINK_STATE_IDLE        LinkState = 0 // No stream open, codec quiet.
	LINK_STATE_NEGOTIATING LinkState = 1 // Parameters proposed, not yet committed.
	LINK_STATE_ACTIVE      LinkState = 2 // Stream open, codec initialized and un-muted.
	LINK_STATE_CLOSING     LinkState = 3 // Teardown in progress.
)

// LinkStateNames provides human-readable names for link states.
// The index corresponds to the LinkState value.
var LinkStateNames = []string{
	"IDLE",
	"NEGOTIATING",
	"ACTIVE",
	"CLOSING",
}

// String returns the human-readable name of the link state.
func (s LinkState) String() string {
	if s < 0 || int(s) >= len(LinkStateNames) {
		return "UNKNOWN"
	}

	return LinkStateNames[s]
}

// Errors returned by binding resolution and the stream sequencer.
var (
	// ErrMissingCPUBinding indicates the board description has no resolvable
	// "audio-cpu" reference.
	ErrMissingCPUBinding = errors.New("property 'audio-cpu' missing or invalid")

	// ErrMissingCodecBinding indicates the board description has no resolvable
	// "audio-codec" reference.
	ErrMissingCodecBinding = errors.New("property 'audio-codec' missing or invalid")

	// ErrCodecName indicates the codec node resolved but carries no DAI name.
	ErrCodecName = errors.New("unable to get codec dai name")

	// ErrUnsupportedRate indicates a proposed sample rate other than FrameRate.
	ErrUnsupportedRate = errors.New("unsupported sample rate")

	// ErrProbeDefer is returned by a DeviceProvider when a referenced device
	// exists in the board description but is not yet available. The caller may
	// retry the attach later.
	ErrProbeDefer = errors.New("device not yet available, defer probe")
)

// ClockSetter configures an endpoint's system clock. Implementations are
// supplied per endpoint by a DeviceProvider.
type ClockSetter interface {
	// SetSysclk requests the given clock id be driven at freq Hz in the given
	// direction. Returns an error if the endpoint rejects the frequency.
	SetSysclk(clkID int, freq uint32, dir ClockDirection) error
}

// RegisterWriter writes single codec registers. No reads are performed by
// this package; snapshot application is write-only with no read-back.
type RegisterWriter interface {
	WriteRegister(reg uint8, val uint8) error
}
