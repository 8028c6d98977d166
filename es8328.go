package soc

// ES8328 codec register addresses used by the machine driver.
// These values correspond to the ES8328_* register map.
const (
	ES8328_CONTROL1     uint8 = 0x00
	ES8328_ADCPOWER     uint8 = 0x03
	ES8328_ADCCONTROL1  uint8 = 0x09
	ES8328_ADCCONTROL2  uint8 = 0x0a
	ES8328_ADCCONTROL3  uint8 = 0x0b
	ES8328_LADC_VOL     uint8 = 0x10
	ES8328_RADC_VOL     uint8 = 0x11
	ES8328_ADCCONTROL10 uint8 = 0x12
	ES8328_ADCCONTROL11 uint8 = 0x13
	ES8328_ADCCONTROL12 uint8 = 0x14
	ES8328_ADCCONTROL13 uint8 = 0x15
	ES8328_ADCCONTROL14 uint8 = 0x16
	ES8328_DACCONTROL3  uint8 = 0x19
	ES8328_LDAC_VOL     uint8 = 0x1a
	ES8328_RDAC_VOL     uint8 = 0x1b
	ES8328_DACCONTROL16 uint8 = 0x26
	ES8328_DACCONTROL17 uint8 = 0x27
	ES8328_DACCONTROL18 uint8 = 0x28
	ES8328_DACCONTROL19 uint8 = 0x29
	ES8328_DACCONTROL20 uint8 = 0x2a
	ES8328_LOUT1_VOL    uint8 = 0x2e
	ES8328_ROUT1_VOL    uint8 = 0x2f
	ES8328_LOUT2_VOL    uint8 = 0x30
	ES8328_ROUT2_VOL    uint8 = 0x31
)

// RegWrite is a single (register, value) pair within a snapshot.
type RegWrite struct {
	Reg uint8
	Val uint8
}

// RegisterSnapshot is a fixed, ordered list of codec register writes applied
// as a unit. Snapshots are immutable constant data; applying one copies the
// values into live codec registers in order.
type RegisterSnapshot []RegWrite

// es8328Active is the full initialization sequence: power-up, sample-rate
// dividers, ADC gain and ALC, DAC mixer routing, and nominal output volume.
var es8328Active = RegisterSnapshot{
	{ES8328_CONTROL1, 0x35},     // fs ratio, power sequencing, reference
	{ES8328_ADCPOWER, 0x09},     // ADC power up
	{ES8328_ADCCONTROL1, 0x00},  // mic gain 0dB
	{ES8328_ADCCONTROL2, 0x00},  // LINPUT1 select
	{ES8328_ADCCONTROL3, 0x00},  // RINPUT1 select
	{ES8328_LADC_VOL, 0x00},     // ADC left volume 0dB
	{ES8328_RADC_VOL, 0x00},     // ADC right volume 0dB
	{ES8328_ADCCONTROL10, 0xea}, // ALC on, min/max gain
	{ES8328_ADCCONTROL11, 0xc0}, // ALC target, hold time
	{ES8328_ADCCONTROL12, 0x05}, // ALC decay/attack
	{ES8328_ADCCONTROL13, 0x06}, // ALC mode, zero cross
	{ES8328_ADCCONTROL14, 0x53}, // noise gate on
	{ES8328_DACCONTROL3, 0x02},  // DAC unmute, soft ramp
	{ES8328_LDAC_VOL, 0x0a},     // DAC left volume
	{ES8328_RDAC_VOL, 0x0a},     // DAC right volume
	{ES8328_DACCONTROL16, 0x12}, // mixer input select
	{ES8328_DACCONTROL17, 0xb8}, // left DAC to left mixer
	{ES8328_DACCONTROL18, 0x38},
	{ES8328_DACCONTROL19, 0x38},
	{ES8328_DACCONTROL20, 0xb8}, // right DAC to right mixer
	{ES8328_LOUT1_VOL, 0x24},    // nominal LOUT1 volume
	{ES8328_ROUT1_VOL, 0x24},    // nominal ROUT1 volume
	{ES8328_LOUT2_VOL, 0x00},    // LOUT2 unused
	{ES8328_ROUT2_VOL, 0x00},    // ROUT2 unused
}

// es8328Quiet forces the output volume registers to silence. It is applied at
// link init (boot-quiet) and at stream shutdown, independent of power state.
var es8328Quiet = RegisterSnapshot{
	{ES8328_LOUT1_VOL, 0x00},
	{ES8328_ROUT1_VOL, 0x00},
}

// Apply writes the snapshot's pairs in order to the codec. Writes are
// unconditional single-register writes with no read-back and no rollback;
// individual write failures are ignored and the sequence continues, leaving
// at worst a mixed register state. Audio-mute correctness is best-effort,
// not safety-critical.
func (s RegisterSnapshot) Apply(w RegisterWriter) {
	for _, rw := range s {
		_ = w.WriteRegister(rw.Reg, rw.Val)
	}
}
