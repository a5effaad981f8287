package signal_test

import (
	"fmt"

	"github.com/euphoriae/audiofx/dsp/signal"
)

func ExampleOscillator_Fill() {
	// A 12 kHz sine at 48 kHz advances a quarter period per sample.
	osc, err := signal.NewOscillator(48000, 12000, 1)
	if err != nil {
		fmt.Println("error")
		return
	}

	buf := make([]float64, 4)
	osc.Fill(buf)

	fmt.Printf("%.2f %.2f %.2f %.2f\n", buf[0], buf[1], buf[2], buf[3])
	// Output:
	// 0.00 1.00 0.00 -1.00
}

func ExampleNormalize() {
	buf := []float64{0.1, -0.4, 0.2}
	if err := signal.Normalize(buf, 1); err != nil {
		fmt.Println("error")
		return
	}

	fmt.Printf("%.2f %.2f %.2f\n", buf[0], buf[1], buf[2])
	// Output:
	// 0.25 -1.00 0.50
}
