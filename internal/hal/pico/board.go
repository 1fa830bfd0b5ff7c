//go:build tinygo

package pico

import (
	"fmt"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/hal/textdisplay"
)

const (
	// ToneFrequency is the buzzer pitch in hertz.
	ToneFrequency = 392

	// DisplayAddress is the I2C address of the OLED.
	DisplayAddress = 0x3C

	displayWidth  = 128
	displayHeight = 64
)

// pwmGroup is the part of a TinyGo PWM slice the buzzer uses.
type pwmGroup interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Set(channel uint8, value uint32)
	Top() uint32
}

// Board holds the configured peripherals.
type Board struct {
	buttons [len(match.Buttons)]machine.Pin
	red     machine.Pin
	green   machine.Pin
	blue    machine.Pin
	pwm     pwmGroup
	channel uint8
	display *textdisplay.Renderer
}

// Configure sets up every pin, the PWM slice and the OLED.
func Configure() (*Board, error) {
	b := &Board{
		buttons: [len(match.Buttons)]machine.Pin{
			match.ButtonA:       machine.GP5,
			match.ButtonB:       machine.GP6,
			match.ButtonControl: machine.GP22,
		},
		red:   machine.GP13,
		green: machine.GP11,
		blue:  machine.GP12,
		pwm:   machine.PWM2,
	}

	for _, pin := range b.buttons {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}

	for _, pin := range []machine.Pin{b.red, b.green, b.blue} {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}

	err := b.pwm.Configure(machine.PWMConfig{Period: uint64(time.Second) / ToneFrequency})
	if err != nil {
		return nil, fmt.Errorf("configure buzzer: %w", err)
	}

	b.channel, err = b.pwm.Channel(machine.GP21)
	if err != nil {
		return nil, fmt.Errorf("buzzer channel: %w", err)
	}

	b.pwm.Set(b.channel, 0)

	err = machine.I2C1.Configure(machine.I2CConfig{
		SDA:       machine.GP14,
		SCL:       machine.GP15,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		return nil, fmt.Errorf("configure i2c: %w", err)
	}

	dev := ssd1306.NewI2C(machine.I2C1)
	dev.Configure(ssd1306.Config{
		Width:    displayWidth,
		Height:   displayHeight,
		Address:  DisplayAddress,
		VccState: ssd1306.SWITCHCAPVCC,
	})

	b.display = textdisplay.New(dev)

	return b, nil
}

// ReadButton reports the level of an active-low button.
func (b *Board) ReadButton(btn match.Button) match.Level {
	if int(btn) >= len(b.buttons) || b.buttons[btn].Get() {
		return match.LevelReleased
	}

	return match.LevelPressed
}

// Render draws lines on the OLED.
func (b *Board) Render(lines []string) error {
	return b.display.Render(lines)
}

// Tone switches the buzzer at a 50% duty cycle.
func (b *Board) Tone(on bool) error {
	var duty uint32
	if on {
		duty = b.pwm.Top() / 2
	}

	b.pwm.Set(b.channel, duty)

	return nil
}

// SetColor drives the three LED channels.
func (b *Board) SetColor(c match.Color) error {
	b.red.Set(c.R)
	b.green.Set(c.G)
	b.blue.Set(c.B)

	return nil
}

// Halt blinks the LED red forever.
func (b *Board) Halt() {
	for {
		b.red.Set(!b.red.Get())
		time.Sleep(250 * time.Millisecond)
	}
}
