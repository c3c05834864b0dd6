package butter_test

import (
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/filter/butter"
)

func ExampleNewModule() {
	in, _ := buffer.New(1, 1, 1, 480, 48000)
	in.Fill(1)

	lp := butter.NewModule(butter.WithCutoff(100))
	if err := lp.Initialize(in); err != nil {
		panic(err)
	}

	for range 20 {
		_ = lp.Process(in)
	}

	fmt.Printf("%.6f\n", lp.Output().Sample(0, 0, 0, 479))

	// Output:
	// 1.000000
}
