package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVLQEncodeDecodeInt(t *testing.T) {
	values := []int32{0, 1, -1, 31, -32, 95, 96, 127, -127, 1000, -1000, 65535, -65535, 1 << 30, -(1 << 30)}

	for _, expected := range values {
		output := NewScratchOutput()
		EncodeVLQInt(output, expected)
		data := output.Result()

		decoded, err := DecodeVLQInt(&data)
		require.NoError(t, err, "value %d", expected)
		assert.Equal(t, expected, decoded)
		assert.Empty(t, data, "value %d left bytes behind", expected)
	}
}

func TestVLQEncodeDecodeUint(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 1000, 32768, 65535, 0x7FFFFFFF, 0xFFFFFFFF}

	for _, expected := range values {
		output := NewScratchOutput()
		EncodeVLQUint(output, expected)
		data := output.Result()

		decoded, err := DecodeVLQUint(&data)
		require.NoError(t, err, "value %d", expected)
		assert.Equal(t, expected, decoded)
	}
}

func TestVLQSmallValuesUseOneByte(t *testing.T) {
	output := NewScratchOutput()
	EncodeVLQUint(output, 95)
	assert.Len(t, output.Result(), 1)
}

func TestVLQTruncated(t *testing.T) {
	data := []byte{0x81}
	_, err := DecodeVLQUint(&data)
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	data = nil
	_, err = DecodeVLQUint(&data)
	assert.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestVLQTooLong(t *testing.T) {
	data := []byte{0x81, 0x81, 0x81, 0x81, 0x81, 0x01}
	_, err := DecodeVLQUint(&data)
	assert.ErrorIs(t, err, ErrInvalidVLQ)
}
