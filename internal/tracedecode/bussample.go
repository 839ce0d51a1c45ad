// Package tracedecode decodes the bit layout of a TraceSample's
// sample_bits word into human-readable bus state. Firmware never
// interprets this layout itself — only the host, for the `capture usb`
// CLI subcommand, needs it.
package tracedecode

// BusSample is the decoded form of one 32-bit sniffer sample.
type BusSample struct {
	Data  byte
	Addr  byte
	RnW   bool
	Clk   bool
	Aux0  bool
	Aux1  bool
	FredN bool
}

// Decode unpacks a TraceSample's sample_bits per the fixed layout:
// [7:0]=D0..D7, [15:8]=A0..A7, [16]=RnW, [17]=CLK, [18]/[19]=aux control,
// [20]=FRED_N, upper bits reserved-zero.
func Decode(sampleBits uint32) BusSample {
	return BusSample{
		Data:  byte(sampleBits),
		Addr:  byte(sampleBits >> 8),
		RnW:   sampleBits&(1<<16) != 0,
		Clk:   sampleBits&(1<<17) != 0,
		Aux0:  sampleBits&(1<<18) != 0,
		Aux1:  sampleBits&(1<<19) != 0,
		FredN: sampleBits&(1<<20) != 0,
	}
}
