package cpu

// executeBase runs one unprefixed opcode. Grounded on the control flow
// of internal/cpu/decode.go's switch-based dispatcher, adapted from
// ticking components inline to simply mutating CPU/Bus state - cycle
// accounting is the caller's job (tables.go).
func (c *CPU) executeBase(opcode uint8) {
	switch {
	case opcode >= 0x40 && opcode <= 0x7F && opcode != 0x76:
		c.execLoadRR(opcode)
		return
	case opcode >= 0x80 && opcode <= 0xBF:
		c.execALU(opcode)
		return
	}

	switch opcode {
	case 0x00: // NOP
	case 0x01:
		c.BC.Write(c.fetchWord())
	case 0x02:
		c.Bus.Write(c.BC.Read(), c.A)
	case 0x03:
		c.BC.Write(c.BC.Read() + 1)
	case 0x04:
		c.B = c.inc8(c.B)
	case 0x05:
		c.B = c.dec8(c.B)
	case 0x06:
		c.B = c.fetch()
	case 0x07:
		c.A = c.rlc(c.A)
		c.clearFlag(FlagZero)
	case 0x08:
		addr := c.fetchWord()
		c.Bus.WriteWord(addr, c.SP)
	case 0x09:
		c.addHL(c.BC.Read())
	case 0x0A:
		c.A = c.Bus.Read(c.BC.Read())
	case 0x0B:
		c.BC.Write(c.BC.Read() - 1)
	case 0x0C:
		c.C = c.inc8(c.C)
	case 0x0D:
		c.C = c.dec8(c.C)
	case 0x0E:
		c.C = c.fetch()
	case 0x0F:
		c.A = c.rrc(c.A)
		c.clearFlag(FlagZero)

	case 0x10: // STOP
		c.fetch() // STOP is followed by an ignored padding byte
		c.mode = modeStop
	case 0x11:
		c.DE.Write(c.fetchWord())
	case 0x12:
		c.Bus.Write(c.DE.Read(), c.A)
	case 0x13:
		c.DE.Write(c.DE.Read() + 1)
	case 0x14:
		c.D = c.inc8(c.D)
	case 0x15:
		c.D = c.dec8(c.D)
	case 0x16:
		c.D = c.fetch()
	case 0x17:
		c.A = c.rl(c.A)
		c.clearFlag(FlagZero)
	case 0x18:
		c.jumpRelative(c.fetch())
	case 0x19:
		c.addHL(c.DE.Read())
	case 0x1A:
		c.A = c.Bus.Read(c.DE.Read())
	case 0x1B:
		c.DE.Write(c.DE.Read() - 1)
	case 0x1C:
		c.E = c.inc8(c.E)
	case 0x1D:
		c.E = c.dec8(c.E)
	case 0x1E:
		c.E = c.fetch()
	case 0x1F:
		c.A = c.rr(c.A)
		c.clearFlag(FlagZero)

	case 0x20:
		d := c.fetch()
		if c.condition(0) {
			c.jumpRelative(d)
		}
	case 0x21:
		c.HL.Write(c.fetchWord())
	case 0x22:
		c.Bus.Write(c.HL.Read(), c.A)
		c.HL.Write(c.HL.Read() + 1)
	case 0x23:
		c.HL.Write(c.HL.Read() + 1)
	case 0x24:
		c.H = c.inc8(c.H)
	case 0x25:
		c.H = c.dec8(c.H)
	case 0x26:
		c.H = c.fetch()
	case 0x27:
		c.daa()
	case 0x28:
		d := c.fetch()
		if c.condition(1) {
			c.jumpRelative(d)
		}
	case 0x29:
		c.addHL(c.HL.Read())
	case 0x2A:
		c.A = c.Bus.Read(c.HL.Read())
		c.HL.Write(c.HL.Read() + 1)
	case 0x2B:
		c.HL.Write(c.HL.Read() - 1)
	case 0x2C:
		c.L = c.inc8(c.L)
	case 0x2D:
		c.L = c.dec8(c.L)
	case 0x2E:
		c.L = c.fetch()
	case 0x2F:
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)

	case 0x30:
		d := c.fetch()
		if c.condition(2) {
			c.jumpRelative(d)
		}
	case 0x31:
		c.SP = c.fetchWord()
	case 0x32:
		c.Bus.Write(c.HL.Read(), c.A)
		c.HL.Write(c.HL.Read() - 1)
	case 0x33:
		c.SP++
	case 0x34:
		c.writeHL(c.inc8(c.readHL()))
	case 0x35:
		c.writeHL(c.dec8(c.readHL()))
	case 0x36:
		c.writeHL(c.fetch())
	case 0x37:
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	case 0x38:
		d := c.fetch()
		if c.condition(3) {
			c.jumpRelative(d)
		}
	case 0x39:
		c.addHL(c.SP)
	case 0x3A:
		c.A = c.Bus.Read(c.HL.Read())
		c.HL.Write(c.HL.Read() - 1)
	case 0x3B:
		c.SP--
	case 0x3C:
		c.A = c.inc8(c.A)
	case 0x3D:
		c.A = c.dec8(c.A)
	case 0x3E:
		c.A = c.fetch()
	case 0x3F:
		c.flag(FlagCarry, !c.isFlagSet(FlagCarry))
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)

	case 0x76: // HALT
		c.enterHalt()

	case 0xC0:
		if c.condition(0) {
			c.ret()
		}
	case 0xC1:
		c.popPair(0)
	case 0xC2:
		addr := c.fetchWord()
		if c.condition(0) {
			c.jumpAbsolute(addr)
		}
	case 0xC3:
		c.jumpAbsolute(c.fetchWord())
	case 0xC4:
		addr := c.fetchWord()
		if c.condition(0) {
			c.call(addr)
		}
	case 0xC5:
		c.pushPair(0)
	case 0xC6:
		c.add8(c.fetch(), false)
	case 0xC7:
		c.rst(0x00)
	case 0xC8:
		if c.condition(1) {
			c.ret()
		}
	case 0xC9:
		c.ret()
	case 0xCA:
		addr := c.fetchWord()
		if c.condition(1) {
			c.jumpAbsolute(addr)
		}
	case 0xCC:
		addr := c.fetchWord()
		if c.condition(1) {
			c.call(addr)
		}
	case 0xCD:
		c.call(c.fetchWord())
	case 0xCE:
		c.add8(c.fetch(), true)
	case 0xCF:
		c.rst(0x08)

	case 0xD0:
		if c.condition(2) {
			c.ret()
		}
	case 0xD1:
		c.popPair(1)
	case 0xD2:
		addr := c.fetchWord()
		if c.condition(2) {
			c.jumpAbsolute(addr)
		}
	case 0xD4:
		addr := c.fetchWord()
		if c.condition(2) {
			c.call(addr)
		}
	case 0xD5:
		c.pushPair(1)
	case 0xD6:
		c.A = c.sub8(c.fetch(), false)
	case 0xD7:
		c.rst(0x10)
	case 0xD8:
		if c.condition(3) {
			c.ret()
		}
	case 0xD9:
		c.ret()
		c.ime = true
	case 0xDA:
		addr := c.fetchWord()
		if c.condition(3) {
			c.jumpAbsolute(addr)
		}
	case 0xDC:
		addr := c.fetchWord()
		if c.condition(3) {
			c.call(addr)
		}
	case 0xDE:
		c.A = c.sub8(c.fetch(), true)
	case 0xDF:
		c.rst(0x18)

	case 0xE0:
		c.Bus.Write(0xFF00+uint16(c.fetch()), c.A)
	case 0xE1:
		c.popPair(2)
	case 0xE2:
		c.Bus.Write(0xFF00+uint16(c.C), c.A)
	case 0xE5:
		c.pushPair(2)
	case 0xE6:
		c.and8(c.fetch())
	case 0xE7:
		c.rst(0x20)
	case 0xE8:
		c.SP = c.addSPSigned(c.SP, c.fetch())
	case 0xE9:
		c.PC = c.HL.Read()
	case 0xEA:
		c.Bus.Write(c.fetchWord(), c.A)
	case 0xEE:
		c.xor8(c.fetch())
	case 0xEF:
		c.rst(0x28)

	case 0xF0:
		c.A = c.Bus.Read(0xFF00 + uint16(c.fetch()))
	case 0xF1:
		c.popPair(3)
	case 0xF2:
		c.A = c.Bus.Read(0xFF00 + uint16(c.C))
	case 0xF3:
		c.ime = false
		c.pendingEI = false
	case 0xF5:
		c.pushPair(3)
	case 0xF6:
		c.or8(c.fetch())
	case 0xF7:
		c.rst(0x30)
	case 0xF8:
		c.HL.Write(c.addSPSigned(c.SP, c.fetch()))
	case 0xF9:
		c.SP = c.HL.Read()
	case 0xFA:
		c.A = c.Bus.Read(c.fetchWord())
	case 0xFB:
		c.pendingEI = true
	case 0xFE:
		c.cp8(c.fetch())
	case 0xFF:
		c.rst(0x38)
	}
}

// enterHalt implements the HALT opcode, grounded on
// internal/cpu/instructions.go's HALT handler: a clean halt when IME is
// set or no interrupt is pending, and the halt bug when IME is clear
// and an interrupt is already pending.
func (c *CPU) enterHalt() {
	switch {
	case c.ime:
		c.mode = modeHalt
	case c.IRQ.Pending():
		c.mode = modeHaltBug
	default:
		c.mode = modeHalt
	}
}

// execLoadRR handles the LD r,r'/LD r,(HL)/LD (HL),r block, 0x40-0x7F
// minus 0x76 (HALT), via the standard dest/src 3-bit field encoding.
func (c *CPU) execLoadRR(opcode uint8) {
	dst := (opcode >> 3) & 0x07
	src := opcode & 0x07

	value := c.readOperand(src)
	c.writeOperand(dst, value)
}

func (c *CPU) readOperand(index uint8) uint8 {
	if index == 6 {
		return c.readHL()
	}
	return *c.registerIndex(index)
}

func (c *CPU) writeOperand(index uint8, value uint8) {
	if index == 6 {
		c.writeHL(value)
		return
	}
	*c.registerIndex(index) = value
}

// execALU handles the ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r block,
// 0x80-0xBF, via the 3-bit operation-select field.
func (c *CPU) execALU(opcode uint8) {
	op := (opcode >> 3) & 0x07
	value := c.readOperand(opcode & 0x07)

	switch op {
	case 0:
		c.add8(value, false)
	case 1:
		c.add8(value, true)
	case 2:
		c.A = c.sub8(value, false)
	case 3:
		c.A = c.sub8(value, true)
	case 4:
		c.and8(value)
	case 5:
		c.xor8(value)
	case 6:
		c.or8(value)
	case 7:
		c.cp8(value)
	}
}
