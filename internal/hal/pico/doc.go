// Package pico drives the chess clock peripherals on a Raspberry Pi Pico:
// three active-low push buttons, a PWM buzzer, a common-cathode RGB LED and
// an SSD1306 OLED on I2C1. It only builds with TinyGo.
//
// Wiring:
//
//	Button A        GP5   (pull-up, pressed = low)
//	Button B        GP6   (pull-up, pressed = low)
//	Button Control  GP22  (pull-up, pressed = low)
//	Buzzer          GP21  (PWM2 channel B, 392 Hz)
//	LED R, G, B     GP13, GP11, GP12
//	OLED SDA, SCL   GP14, GP15 (I2C1, 400 kHz, address 0x3C)
package pico
