package cpu

// condition reports whether the given 2-bit condition code (as encoded
// in JR/JP/CALL/RET cc opcodes) currently holds.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	case 3:
		return c.isFlagSet(FlagCarry)
	}
	return false
}

// pushPair/popPair implement PUSH/POP qq, where qq==3 names AF instead
// of SP (SP is never pushable directly).
func (c *CPU) pushPair(index uint8) {
	switch index {
	case 0:
		c.push(c.BC.Read())
	case 1:
		c.push(c.DE.Read())
	case 2:
		c.push(c.HL.Read())
	case 3:
		c.push(c.AF.Read())
	}
}

func (c *CPU) popPair(index uint8) {
	value := c.pop()
	switch index {
	case 0:
		c.BC.Write(value)
	case 1:
		c.DE.Write(value)
	case 2:
		c.HL.Write(value)
	case 3:
		// the low nibble of F is always zero on real hardware.
		c.AF.Write(value &^ 0x000F)
	}
}
