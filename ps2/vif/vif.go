package vif

import "fmt"

type VifCode uint32

const (
	VIF_CMD_NOP      = 0x00 // No Operation
	VIF_CMD_STCYCL   = 0x01 // Sets CYCLE register
	VIF_CMD_OFFSET   = 0x02 // Sets OFFSET register (VIF1)
	VIF_CMD_BASE     = 0x03 // Sets BASE register (VIF1)
	VIF_CMD_ITOP     = 0x04 // Sets ITOPS register
	VIF_CMD_STMOD    = 0x05 // Sets MODE register
	VIF_CMD_MSKPATH3 = 0x06 // Mask GIF transfer (VIF1)
	VIF_CMD_MARK     = 0x07 // Sets Mark register
	VIF_CMD_FLUSHE   = 0x10 // Wait for end of microprogram
	VIF_CMD_FLUSH    = 0x11 // Wait for end of microprogram & Path 1/2 GIF xfer (VIF1)
	VIF_CMD_FLUSHA   = 0x13 // Wait for end of microprogram & all Path GIF xfer (VIF1)
	VIF_CMD_MSCAL    = 0x14 // Activate microprogram
	VIF_CMD_MSCNT    = 0x17 // Execute microrprogram continuously
	VIF_CMD_MSCALF   = 0x15 // Activate microprogram (VIF1)
	VIF_CMD_STMASK   = 0x20 // Sets MASK register
	VIF_CMD_STROW    = 0x30 // Sets ROW register
	VIF_CMD_STCOL    = 0x31 // Sets COL register
	VIF_CMD_MPG      = 0x4A // Load microprogram
	VIF_CMD_DIRECT   = 0x50 // Transfer data to GIF (VIF1)
	VIF_CMD_DIRECTHL = 0x51 // Transfer data to GIF but stall for Path 3 IMAGE mode (VIF1)
)

func (v VifCode) Cmd() uint8 {
	return uint8((v >> 24) & 0xff)
}

func (v VifCode) Num() uint8 {
	return uint8((v >> 16) & 0xff)
}

func (v VifCode) Imm() uint16 {
	return uint16(v & 0xffff)
}

func (v VifCode) IsIRQ() bool {
	return (v>>31)&1 != 0
}

func (v VifCode) String() string {
	return fmt.Sprintf("VifCode{Cmd:0x%.2x; Num:0x%.2x; Imm:0x%.4x; IRQ:%t}",
		v.Cmd(), v.Num(), v.Imm(), v.IsIRQ())
}

func NewCode(raw uint32) VifCode {
	return VifCode(raw)
}

// unpack commands are 0x60..0x7f: vn (components-1) in bits 2-3, vl (width) in bits 0-1
const VIF_CMD_UNPACK = 0x60

var unpackWidths = []uint8{32, 16, 8, 5}

func (v VifCode) IsUnpack() bool {
	return v.Cmd()&VIF_CMD_UNPACK == VIF_CMD_UNPACK
}

func (v VifCode) UnpackComponents() uint8 {
	return ((v.Cmd() >> 2) & 0x3) + 1
}

// UnpackWidth returns bit width of one component (5 for packed rgba5551)
func (v VifCode) UnpackWidth() uint8 {
	return unpackWidths[v.Cmd()&0x3]
}

// UnpackElementSize returns size of one unpacked element in bytes
func (v VifCode) UnpackElementSize() uint32 {
	if v.UnpackWidth() == 5 {
		return 2
	}
	return uint32(v.UnpackComponents()) * uint32(v.UnpackWidth()) / 8
}

func (v VifCode) UnpackIsSigned() bool {
	return (v.Imm()>>14)&1 == 0
}

func (v VifCode) UnpackUseTops() bool {
	return (v.Imm()>>15)&1 != 0
}

func (v VifCode) UnpackTarget() uint16 {
	return v.Imm() & 0x3ff
}

func (v VifCode) UnpackString() string {
	if !v.IsUnpack() {
		return v.String()
	}
	return fmt.Sprintf("Unpack{V%d-%d; Num:0x%.2x; Target:0x%.3x; Signed:%t; Tops:%t}",
		v.UnpackComponents(), v.UnpackWidth(), v.Num(), v.UnpackTarget(), v.UnpackIsSigned(), v.UnpackUseTops())
}
