package cpu

func (c *CPU) jumpAbsolute(addr uint16) {
	c.PC = addr
	c.branchTaken = true
}

func (c *CPU) jumpRelative(displacement uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(displacement)))
	c.branchTaken = true
}

func (c *CPU) call(addr uint16) {
	c.push(c.PC)
	c.PC = addr
	c.branchTaken = true
}

func (c *CPU) ret() {
	c.PC = c.pop()
	c.branchTaken = true
}

func (c *CPU) rst(vector uint16) {
	c.push(c.PC)
	c.PC = vector
}
