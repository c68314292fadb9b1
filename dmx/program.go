package dmx

// Program is a loaded and configured PIO state machine running the transmit
// or receive program, as seen by the lifecycle managers.
type Program interface {
	// Reset clears the FIFOs and restarts the program at its first
	// instruction. The enabled state is kept.
	Reset()
	SetEnabled(enabled bool)
	// FIFO returns the bus address the DMA channel reads or writes: the TX
	// FIFO for the transmit program, the top byte of the RX FIFO for the
	// receive program.
	FIFO() uint32
	// DREQ returns the data request that paces the DMA channel.
	DREQ() uint8
}

// PIO register addresses used for DMA.
const (
	PIO0Base   = 0x50200000
	PIO1Base   = 0x50300000
	pioTXF0    = 0x10
	pioRXF0    = 0x20
	fifoStride = 4
)

// TxFIFOAddr returns the bus address of a state machine's TX FIFO.
func TxFIFOAddr(block, sm uint8) uint32 {
	return pioBase(block) + pioTXF0 + uint32(sm)*fifoStride
}

// RxFIFOByteAddr returns the bus address of the most significant byte of a
// state machine's RX FIFO, where a byte shifted in from the left ends up.
func RxFIFOByteAddr(block, sm uint8) uint32 {
	return pioBase(block) + pioRXF0 + uint32(sm)*fifoStride + 3
}

func pioBase(block uint8) uint32 {
	if block == 0 {
		return PIO0Base
	}
	return PIO1Base
}

// Transmit program, run at 1MHz with the DMX pin as side-set and out pin.
// Output shifts right, so bytes go out least significant bit first.
//
//	.side_set 1 opt
//	    pull block          side 1      ; idle high until the frame's first byte
//	    set x, 20           side 0 [7]  ; BREAK, 8 + 21*8 = 176us
//	breakloop:
//	    jmp x--, breakloop         [7]
//	    nop                 side 1 [7]  ; MAB, 16us
//	    nop                        [7]
//	.wrap_target
//	    set x, 7            side 0 [3]  ; start bit, 4us
//	bitloop:
//	    out pins, 1                     ; data bit, 4us
//	    jmp x--, bitloop           [2]
//	    pull block          side 1 [7]  ; stop bits, 8us, or idle until the next byte
//	.wrap
var txProgram = []uint16{
	0x98a0, //  0: pull   block           side 1
	0xf734, //  1: set    x, 20           side 0 [7]
	0x0742, //  2: jmp    x--, 2                 [7]
	0xbf42, //  3: nop                    side 1 [7]
	0xa742, //  4: nop                           [7]
	0xf327, //  5: set    x, 7            side 0 [3]
	0x6001, //  6: out    pins, 1
	0x0246, //  7: jmp    x--, 6                 [2]
	0x9fa0, //  8: pull   block           side 1 [7]
}

const (
	txWrapTarget  = 5
	txWrap        = 8
	txSidesetBits = 2 // one pin plus the optional flag
)

// Receive program, run at 1MHz with the DMX pin as in pin and jmp pin.
// Input shifts right, so the byte lands in ISR bits 31:24, least significant
// bit first. The frame length minus one is pulled once after each restart
// and reloaded into y on every BREAK. The program raises its relative IRQ 0
// when a frame completes and when a missing stop bit reveals an early BREAK.
//
//	    pull block                 ; frame length - 1
//	break_reset:
//	    set x, 29                  ; BREAK is 30 * 3 = 90us of low samples
//	break_loop:
//	    jmp pin, break_reset [1]
//	    jmp x--, break_loop
//	    mov y, osr
//	    wait 1 pin 0               ; MAB
//	next_byte:
//	    wait 0 pin 0 [2]           ; start bit
//	    set x, 7 [2]               ; first sample 6us after the edge
//	bitloop:
//	    in pins, 1
//	    jmp x--, bitloop [2]
//	    jmp pin, got_stop
//	    irq nowait 0 rel           ; early BREAK, credit the low time seen so far
//	    set x, 15
//	    jmp break_loop
//	got_stop:
//	    push noblock
//	    jmp y--, next_byte
//	    irq nowait 0 rel           ; frame complete
//	    jmp break_reset
var rxProgram = []uint16{
	0x80a0, //  0: pull   block
	0xe03d, //  1: set    x, 29
	0x01c1, //  2: jmp    pin, 1             [1]
	0x0042, //  3: jmp    x--, 2
	0xa047, //  4: mov    y, osr
	0x20a0, //  5: wait   1 pin, 0
	0x2220, //  6: wait   0 pin, 0           [2]
	0xe227, //  7: set    x, 7               [2]
	0x4001, //  8: in     pins, 1
	0x0248, //  9: jmp    x--, 8             [2]
	0x00ce, // 10: jmp    pin, 14
	0xc010, // 11: irq    nowait 0 rel
	0xe02f, // 12: set    x, 15
	0x0002, // 13: jmp    2
	0x8000, // 14: push   noblock
	0x0086, // 15: jmp    y--, 6
	0xc010, // 16: irq    nowait 0 rel
	0x0001, // 17: jmp    1
}

const (
	rxWrapTarget = 0
	rxWrap       = 17
)
