package cpu

// executeCB runs one CB-prefixed opcode. All 256 CB opcodes share the
// same operand field layout: bits 0-2 select the register or (HL),
// bits 3-5 select the operation (for rotate/shift/swap) or the bit
// index (for BIT/RES/SET), and bits 6-7 select which of those three
// groups applies.
func (c *CPU) executeCB(opcode uint8) {
	group := opcode >> 6
	operand := opcode & 0x07
	field := (opcode >> 3) & 0x07

	value := c.readOperand(operand)

	switch group {
	case 0:
		switch field {
		case 0:
			value = c.rlc(value)
		case 1:
			value = c.rrc(value)
		case 2:
			value = c.rl(value)
		case 3:
			value = c.rr(value)
		case 4:
			value = c.sla(value)
		case 5:
			value = c.sra(value)
		case 6:
			value = c.swap(value)
		case 7:
			value = c.srl(value)
		}
		c.writeOperand(operand, value)
	case 1: // BIT
		c.bit(field, value)
	case 2: // RES
		c.writeOperand(operand, c.res(field, value))
	case 3: // SET
		c.writeOperand(operand, c.set(field, value))
	}
}
