package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/bits"
)

func TestFletcher16Encode(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "empty",
			data: "",
			want: "0000000000000000",
		},
		{
			name: "single byte value 1",
			data: "00000001",
			want: "00000001" + "0000000100000001",
		},
		{
			// 1001 -> 10010000 = 144; sum1 = sum2 = 144 = 0x90
			name: "padding is not emitted",
			data: "1001",
			want: "1001" + "1001000010010000",
		},
		{
			// 0x01, 0x02: sum1 = 1, 3; sum2 = 1, 4
			name: "two bytes",
			data: "0000000100000010",
			want: "0000000100000010" + "0000010000000011",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fletcher16Encoder{}.Encode(bits.MustParse(tt.data))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFletcher16Sums(t *testing.T) {
	sum1, sum2 := Fletcher16Sums(bits.MustParse("00000001"))
	assert.Equal(t, 1, sum1)
	assert.Equal(t, 1, sum2)
	assert.Equal(t, uint16(0x0101), Fletcher16Checksum(bits.MustParse("00000001")))
}

func TestFletcher16Sums_Modulo(t *testing.T) {
	// 0xFF es congruente con 0 módulo 255: la variante no distingue 0x00 de 0xFF
	ff := bits.FromBytes([]byte{0xFF, 0xFF, 0xFF})
	sum1, sum2 := Fletcher16Sums(ff)
	assert.Zero(t, sum1)
	assert.Zero(t, sum2)

	// "abcde" -> 0xC8F0 en la variante sin complemento
	assert.Equal(t, uint16(0xC8F0), Fletcher16Checksum(bits.FromBytes([]byte("abcde"))))

	// sumas siempre en [0, 254]
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i * 37)
	}
	sum1, sum2 = Fletcher16Sums(bits.FromBytes(data))
	assert.Less(t, sum1, 255)
	assert.Less(t, sum2, 255)
}

func TestFletcher16Encode_Pure(t *testing.T) {
	data := bits.MustParse("110")
	first := Fletcher16Encoder{}.Encode(data)
	second := Fletcher16Encoder{}.Encode(data)

	assert.True(t, first.Equal(second))
	assert.Equal(t, "110", data.String())
	assert.Equal(t, 3+ChecksumBits, first.Len())
}
