package cpu

import "github.com/gbcore/dmg/pkg/bits"

// The CB-prefixed rotate/shift group all share the same flag shape:
// Zero from the result (cleared unconditionally for the four
// accumulator-only forms RLCA/RLA/RRCA/RRA), Subtract and HalfCarry
// always cleared, Carry set to the bit shifted out.

func (c *CPU) rlc(value uint8) uint8 {
	carry := value&0x80 != 0
	result := value<<1 | b2u(carry)
	c.setRotateFlags(result, carry)
	return result
}

func (c *CPU) rrc(value uint8) uint8 {
	carry := value&0x01 != 0
	result := value>>1 | (b2u(carry) << 7)
	c.setRotateFlags(result, carry)
	return result
}

func (c *CPU) rl(value uint8) uint8 {
	carryIn := b2u(c.isFlagSet(FlagCarry))
	carryOut := value&0x80 != 0
	result := value<<1 | carryIn
	c.setRotateFlags(result, carryOut)
	return result
}

func (c *CPU) rr(value uint8) uint8 {
	carryIn := b2u(c.isFlagSet(FlagCarry))
	carryOut := value&0x01 != 0
	result := value>>1 | (carryIn << 7)
	c.setRotateFlags(result, carryOut)
	return result
}

func (c *CPU) sla(value uint8) uint8 {
	carry := value&0x80 != 0
	result := value << 1
	c.setRotateFlags(result, carry)
	return result
}

func (c *CPU) sra(value uint8) uint8 {
	carry := value&0x01 != 0
	result := value&0x80 | value>>1
	c.setRotateFlags(result, carry)
	return result
}

func (c *CPU) srl(value uint8) uint8 {
	carry := value&0x01 != 0
	result := value >> 1
	c.setRotateFlags(result, carry)
	return result
}

func (c *CPU) swap(value uint8) uint8 {
	result := value<<4 | value>>4
	c.setZero(result)
	c.clearFlag(FlagSubtract)
	c.clearFlag(FlagHalfCarry)
	c.flag(FlagCarry, false)
	return result
}

func (c *CPU) setRotateFlags(result uint8, carry bool) {
	c.setZero(result)
	c.clearFlag(FlagSubtract)
	c.clearFlag(FlagHalfCarry)
	c.flag(FlagCarry, carry)
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// bit tests bit position n of value, setting Zero/HalfCarry/Subtract
// (Carry is untouched).
func (c *CPU) bit(n uint8, value uint8) {
	c.flag(FlagZero, !bits.Test(value, n))
	c.clearFlag(FlagSubtract)
	c.setFlag(FlagHalfCarry)
}

func (c *CPU) res(n uint8, value uint8) uint8 { return bits.Reset(value, n) }
func (c *CPU) set(n uint8, value uint8) uint8 { return bits.Set(value, n) }
