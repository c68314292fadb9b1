package dma

// Data request signals that can pace a channel. See 2.5.3.1 System DREQ Table
// in the RP2040 datasheet.
const (
	DREQ_PIO0_TX0   = 0x0
	DREQ_PIO0_TX1   = 0x1
	DREQ_PIO0_TX2   = 0x2
	DREQ_PIO0_TX3   = 0x3
	DREQ_PIO0_RX0   = 0x4
	DREQ_PIO0_RX1   = 0x5
	DREQ_PIO0_RX2   = 0x6
	DREQ_PIO0_RX3   = 0x7
	DREQ_PIO1_TX0   = 0x8
	DREQ_PIO1_TX1   = 0x9
	DREQ_PIO1_TX2   = 0xa
	DREQ_PIO1_TX3   = 0xb
	DREQ_PIO1_RX0   = 0xc
	DREQ_PIO1_RX1   = 0xd
	DREQ_PIO1_RX2   = 0xe
	DREQ_PIO1_RX3   = 0xf
	DREQ_SPI0_TX    = 0x10
	DREQ_SPI0_RX    = 0x11
	DREQ_SPI1_TX    = 0x12
	DREQ_SPI1_RX    = 0x13
	DREQ_UART0_TX   = 0x14
	DREQ_UART0_RX   = 0x15
	DREQ_UART1_TX   = 0x16
	DREQ_UART1_RX   = 0x17
	DREQ_PWM_WRAP0  = 0x18
	DREQ_PWM_WRAP1  = 0x19
	DREQ_PWM_WRAP2  = 0x1a
	DREQ_PWM_WRAP3  = 0x1b
	DREQ_PWM_WRAP4  = 0x1c
	DREQ_PWM_WRAP5  = 0x1d
	DREQ_PWM_WRAP6  = 0x1e
	DREQ_PWM_WRAP7  = 0x1f
	DREQ_I2C0_TX    = 0x20
	DREQ_I2C0_RX    = 0x21
	DREQ_I2C1_TX    = 0x22
	DREQ_I2C1_RX    = 0x23
	DREQ_ADC        = 0x24
	DREQ_XIP_STREAM = 0x25
	DREQ_XIP_SSITX  = 0x26
	DREQ_XIP_SSIRX  = 0x27
)

// Transfer request selectors that are not DREQs.
const (
	TREQTimer0  = 0x3b
	TREQTimer1  = 0x3c
	TREQTimer2  = 0x3d
	TREQTimer3  = 0x3e
	TREQUnpaced = 0x3f
)

const badPIOIndex = "dma: invalid PIO block or state machine"

// PIOTxDREQ returns the DREQ raised when the TX FIFO of state machine sm on
// PIO block is not full.
func PIOTxDREQ(block, sm uint8) uint8 {
	if block > 1 || sm > 3 {
		panic(badPIOIndex)
	}
	return DREQ_PIO0_TX0 + block*(DREQ_PIO1_TX0-DREQ_PIO0_TX0) + sm
}

// PIORxDREQ returns the DREQ raised when the RX FIFO of state machine sm on
// PIO block is not empty.
func PIORxDREQ(block, sm uint8) uint8 {
	if block > 1 || sm > 3 {
		panic(badPIOIndex)
	}
	return DREQ_PIO0_RX0 + block*(DREQ_PIO1_RX0-DREQ_PIO0_RX0) + sm
}
