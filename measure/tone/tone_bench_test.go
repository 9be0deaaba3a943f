package tone

import (
	"testing"

	"github.com/cwbudde/algo-tuning/internal/testutil"
)

func BenchmarkDetect(b *testing.B) {
	sizes := []int{1024, 4096, 16384}
	for _, fftSize := range sizes {
		b.Run("fft_"+itoa(fftSize), func(b *testing.B) {
			cfg := Config{
				SampleRate: testSampleRate,
				FFTSize:    fftSize,
			}
			signal := testutil.Partials(testSampleRate, fftSize, chordFreqs, chordAmps)

			det := NewDetector(cfg)

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := det.Detect(signal); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}

	buf := [20]byte{}

	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}

	return string(buf[i:])
}
