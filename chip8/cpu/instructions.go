package cpu

import (
	"github.com/valerio/go-chip8/chip8/bit"
)

// setFlag writes 1 to VF if the condition holds, 0 otherwise.
func (c *CPU) setFlag(condition bool) {
	c.v[flagRegister] = 0
	if condition {
		c.v[flagRegister] = 1
	}
}

func (c *CPU) pushStack(address uint16) error {
	if int(c.sp) >= StackSize {
		return ErrStackOverflow
	}
	c.stack[c.sp] = address
	c.sp++
	return nil
}

func (c *CPU) popStack() (uint16, error) {
	if c.sp == 0 {
		return 0, ErrStackUnderflow
	}
	c.sp--
	return c.stack[c.sp], nil
}

// add sets Vx = Vx + value and VF to the carry.
// The result is written before the flag, so when x is F the flag wins.
func (c *CPU) add(x, value uint8) {
	result, carry := bit.CheckedAdd(c.v[x], value)
	c.v[x] = result
	c.setFlag(carry)
}

// sub sets Vx = minuend - subtrahend and VF to 1 when minuend is strictly greater.
func (c *CPU) sub(x, minuend, subtrahend uint8) {
	c.v[x] = minuend - subtrahend
	c.setFlag(minuend > subtrahend)
}

// shr shifts Vx right by one, VF gets the bit shifted out.
func (c *CPU) shr(x uint8) {
	value := c.v[x]
	c.v[x] = value >> 1
	c.setFlag(bit.IsSet(0, value))
}

// shl shifts Vx left by one, VF gets the bit shifted out.
func (c *CPU) shl(x uint8) {
	value := c.v[x]
	c.v[x] = value << 1
	c.setFlag(bit.IsSet(7, value))
}

// drawSprite XORs the n byte sprite at I onto the screen at (Vx, Vy), wrapping
// around the edges. VF ends up 1 if any lit pixel was turned off.
// The whole sprite must lie inside memory, otherwise nothing is drawn.
func (c *CPU) drawSprite(x, y, height uint8) error {
	sprite, err := c.memory.Span(c.i, int(height))
	if err != nil {
		return err
	}

	originX, originY := uint(c.v[x]), uint(c.v[y])
	c.v[flagRegister] = 0

	collision := false
	for row, line := range sprite {
		for col := uint8(0); col < 8; col++ {
			if !bit.IsSet(7-col, line) {
				continue
			}
			if c.screen.TogglePixel(originX+uint(col), originY+uint(row)) {
				collision = true
			}
		}
	}

	c.setFlag(collision)
	return nil
}

// storeBCD writes the hundreds, tens and ones digits of Vx to I, I+1 and I+2.
func (c *CPU) storeBCD(x uint8) error {
	digits, err := c.memory.Span(c.i, 3)
	if err != nil {
		return err
	}

	value := c.v[x]
	digits[0] = value / 100
	digits[1] = (value / 10) % 10
	digits[2] = value % 10
	return nil
}

// storeRegisters copies V0 through Vx into memory starting at I. I is left unchanged.
func (c *CPU) storeRegisters(x uint8) error {
	dst, err := c.memory.Span(c.i, int(x)+1)
	if err != nil {
		return err
	}
	copy(dst, c.v[:int(x)+1])
	return nil
}

// loadRegisters fills V0 through Vx from memory starting at I. I is left unchanged.
func (c *CPU) loadRegisters(x uint8) error {
	src, err := c.memory.Span(c.i, int(x)+1)
	if err != nil {
		return err
	}
	copy(c.v[:int(x)+1], src)
	return nil
}
