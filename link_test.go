package soc_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zcz3/soc"
)

func TestHwParamsRejectsRates(t *testing.T) {
	for _, rate := range []uint32{8000, 22050, 44099, 44101, 48000, 96000} {
		t.Run(fmt.Sprintf("%dHz", rate), func(t *testing.T) {
			provider := newFakeProvider()
			card := attachTestCard(t, provider)

			err := card.Link.HwParams(&soc.StreamParams{Rate: rate, Channels: 2})
			assert.ErrorIs(t, err, soc.ErrUnsupportedRate, "rate %d must be rejected", rate)
			assert.Equal(t, soc.LINK_STATE_IDLE, card.Link.State())

			// Rejection happens before any clock or register operation.
			assert.Empty(t, provider.clocks.calls)
			assert.Empty(t, provider.codec.writes)
		})
	}
}

func TestHwParamsNil(t *testing.T) {
	card := attachTestCard(t, newFakeProvider())

	err := card.Link.HwParams(nil)
	assert.ErrorIs(t, err, soc.ErrUnsupportedRate)
	assert.Equal(t, soc.LINK_STATE_IDLE, card.Link.State())
}

func TestHwParamsAccepted(t *testing.T) {
	provider := newFakeProvider()
	card := attachTestCard(t, provider)

	err := card.Link.HwParams(&soc.StreamParams{Rate: soc.FrameRate, Channels: 2})
	require.NoError(t, err)
	assert.Equal(t, soc.LINK_STATE_NEGOTIATING, card.Link.State())

	// Master clock goes to the CPU interface first, then the codec, both
	// requesting the same frequency in output mode.
	require.Len(t, provider.clocks.calls, 2)
	for i, endpoint := range []string{"i2s0", "es8328"} {
		call := provider.clocks.calls[i]
		assert.Equal(t, endpoint, call.endpoint)
		assert.Equal(t, soc.MclkID, call.clkID)
		assert.Equal(t, soc.MclkRate, call.freq)
		assert.Equal(t, soc.SND_SOC_CLOCK_OUT, call.dir)
	}

	// Parameter negotiation alone produces no register traffic.
	assert.Empty(t, provider.codec.writes)
}

func TestHwParamsCPUClockRejected(t *testing.T) {
	provider := newFakeProvider()
	provider.clocks.reject["i2s0"] = true
	card := attachTestCard(t, provider)

	err := card.Link.HwParams(&soc.StreamParams{Rate: soc.FrameRate})
	require.Error(t, err)

	var clockErr *soc.ClockError
	require.ErrorAs(t, err, &clockErr)
	assert.Equal(t, "cpu", clockErr.Endpoint)

	assert.Equal(t, soc.LINK_STATE_IDLE, card.Link.State())

	// The codec endpoint is not attempted after the first rejection.
	require.Len(t, provider.clocks.calls, 1)
	assert.Equal(t, "i2s0", provider.clocks.calls[0].endpoint)
}

func TestHwParamsCodecClockRejected(t *testing.T) {
	provider := newFakeProvider()
	provider.clocks.reject["es8328"] = true
	card := attachTestCard(t, provider)

	err := card.Link.HwParams(&soc.StreamParams{Rate: soc.FrameRate})
	require.Error(t, err)

	var clockErr *soc.ClockError
	require.ErrorAs(t, err, &clockErr)
	assert.Equal(t, "codec", clockErr.Endpoint)
	assert.Equal(t, soc.LINK_STATE_IDLE, card.Link.State())
}

func TestInitBootQuiet(t *testing.T) {
	provider := newFakeProvider()

	// Arbitrary power-on register contents, outputs loud.
	provider.codec.regs[soc.ES8328_LOUT1_VOL] = 0x1e
	provider.codec.regs[soc.ES8328_ROUT1_VOL] = 0x1e

	card := attachTestCard(t, provider)
	require.NoError(t, card.Register())

	assert.Equal(t, uint8(0), provider.codec.regs[soc.ES8328_LOUT1_VOL])
	assert.Equal(t, uint8(0), provider.codec.regs[soc.ES8328_ROUT1_VOL])
	assert.Equal(t, soc.LINK_STATE_IDLE, card.Link.State())
}

func TestStartupLifecycle(t *testing.T) {
	provider := newFakeProvider()
	card := attachTestCard(t, provider)
	require.NoError(t, card.Register())

	require.NoError(t, card.Link.HwParams(&soc.StreamParams{Rate: soc.FrameRate, Channels: 2}))
	assert.Equal(t, soc.LINK_STATE_NEGOTIATING, card.Link.State())

	provider.codec.writes = nil
	require.NoError(t, card.Link.Startup())
	assert.Equal(t, soc.LINK_STATE_ACTIVE, card.Link.State())

	// The full initialization snapshot was applied in declaration order.
	writes := provider.codec.writes
	require.NotEmpty(t, writes)
	assert.Equal(t, soc.RegWrite{Reg: soc.ES8328_CONTROL1, Val: 0x35}, writes[0])
	assert.Equal(t, soc.RegWrite{Reg: soc.ES8328_ROUT2_VOL, Val: 0x00}, writes[len(writes)-1])

	// Outputs are un-muted at nominal volume.
	assert.Equal(t, uint8(0x24), provider.codec.regs[soc.ES8328_LOUT1_VOL])
	assert.Equal(t, uint8(0x24), provider.codec.regs[soc.ES8328_ROUT1_VOL])
	assert.Equal(t, uint8(0x02), provider.codec.regs[soc.ES8328_DACCONTROL3])
	assert.Equal(t, uint8(0x09), provider.codec.regs[soc.ES8328_ADCPOWER])
}

func TestStartupIdempotent(t *testing.T) {
	provider := newFakeProvider()
	card := attachTestCard(t, provider)

	require.NoError(t, card.Link.HwParams(&soc.StreamParams{Rate: soc.FrameRate}))
	require.NoError(t, card.Link.Startup())

	after := make(map[uint8]uint8, len(provider.codec.regs))
	for reg, val := range provider.codec.regs {
		after[reg] = val
	}

	require.NoError(t, card.Link.Startup())
	assert.Equal(t, after, provider.codec.regs, "applying the active snapshot twice must be a no-op")
}

func TestStartupClockFailure(t *testing.T) {
	provider := newFakeProvider()
	card := attachTestCard(t, provider)

	require.NoError(t, card.Link.HwParams(&soc.StreamParams{Rate: soc.FrameRate}))

	provider.clocks.reject["es8328"] = true
	err := card.Link.Startup()
	require.Error(t, err)
	assert.Equal(t, soc.LINK_STATE_IDLE, card.Link.State())
	assert.Empty(t, provider.codec.writes, "no register traffic after clock failure")
}

func TestStartupWithoutCodec(t *testing.T) {
	provider := newFakeProvider()
	provider.noCodec = true
	card := attachTestCard(t, provider)

	require.NoError(t, card.Register())
	require.NoError(t, card.Link.HwParams(&soc.StreamParams{Rate: soc.FrameRate}))

	// Degraded path: the stream still becomes Active with no codec programmed.
	require.NoError(t, card.Link.Startup())
	assert.Equal(t, soc.LINK_STATE_ACTIVE, card.Link.State())
	assert.Empty(t, provider.codec.writes)

	card.Link.Shutdown()
	assert.Equal(t, soc.LINK_STATE_IDLE, card.Link.State())
}

func TestShutdownQuiesces(t *testing.T) {
	provider := newFakeProvider()
	card := attachTestCard(t, provider)

	require.NoError(t, card.Link.HwParams(&soc.StreamParams{Rate: soc.FrameRate}))
	require.NoError(t, card.Link.Startup())
	require.Equal(t, uint8(0x24), provider.codec.regs[soc.ES8328_LOUT1_VOL])

	card.Link.Shutdown()

	assert.Equal(t, soc.LINK_STATE_IDLE, card.Link.State())
	assert.Equal(t, uint8(0), provider.codec.regs[soc.ES8328_LOUT1_VOL])
	assert.Equal(t, uint8(0), provider.codec.regs[soc.ES8328_ROUT1_VOL])
}

func TestShutdownIgnoresBusFailure(t *testing.T) {
	provider := newFakeProvider()
	card := attachTestCard(t, provider)

	require.NoError(t, card.Link.HwParams(&soc.StreamParams{Rate: soc.FrameRate}))
	require.NoError(t, card.Link.Startup())

	// Shutdown must not surface register-write failures.
	provider.codec.failWrites = true
	card.Link.Shutdown()
	assert.Equal(t, soc.LINK_STATE_IDLE, card.Link.State())
}

func TestLinkStateString(t *testing.T) {
	assert.Equal(t, "IDLE", soc.LINK_STATE_IDLE.String())
	assert.Equal(t, "ACTIVE", soc.LINK_STATE_ACTIVE.String())
	assert.Equal(t, "UNKNOWN", soc.LinkState(99).String())
}
