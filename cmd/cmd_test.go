package cmd

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/bgallie/des/cryptors"
	"github.com/bgallie/des/cryptors/des"
	"github.com/bgallie/des/cryptors/padding"
	"github.com/friendsofgo/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	useText = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"133457799BBCDFF1", 0x133457799BBCDFF1, false},
		{"0x133457799bbcdff1", 0x133457799BBCDFF1, false},
		{"1334 5779 9BBC DFF1", 0x133457799BBCDFF1, false},
		{"0000000000000000", 0, false},
		{"133457799BBCDF", 0, true},
		{"133457799BBCDFF1FF", 0, true},
		{"133457799BBCDFG1", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseKey(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parseKey(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "parseKey(%q)", tt.in)
		assert.Equal(t, tt.want, got, "parseKey(%q)", tt.in)
	}
}

func TestEncipherCommand(t *testing.T) {
	out, err := executeCommand(t, "encipher", "-k", "133457799BBCDFF1", "0123456789ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, "85E813540F0AB405\n", out)

	out, err = executeCommand(t, "encipher", "-k", "0123456789ABCDEF", "4E6F7720", "69732074", "1111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "3FA40E8A984D4815\n17668DFC7292532D\n", out)
}

func TestDecipherCommand(t *testing.T) {
	out, err := executeCommand(t, "decipher", "-k", "0E329232EA6D0D73", "0000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "8787878787878787\n", out)
}

func TestEncipherCommandRejectsPartialBlocks(t *testing.T) {
	_, err := executeCommand(t, "encipher", "-k", "133457799BBCDFF1", "0123456789ABCD")
	assert.True(t, errors.Is(err, des.ErrBlockLength), "got %v", err)

	_, err = executeCommand(t, "encipher", "-k", "133457799BBCDFF1", "not hex!")
	assert.Error(t, err)
}

func TestTextRoundTrip(t *testing.T) {
	const key = "B4B568AB61E07150"
	out, err := executeCommand(t, "encipher", "-k", key, "--text", "Hello,", "world")
	require.NoError(t, err)
	blocks := strings.Fields(out)
	require.Len(t, blocks, 2)

	out, err = executeCommand(t, append([]string{"decipher", "-k", key, "--text"}, blocks...)...)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world\n", out)
}

func TestDecipherTextBadPadding(t *testing.T) {
	// Deciphering the encipherment of a block of zeros yields zeros, which is
	// not valid padding.
	const key = "133457799BBCDFF1"
	out, err := executeCommand(t, "encipher", "-k", key, "0000000000000000")
	require.NoError(t, err)

	_, err = executeCommand(t, "decipher", "-k", key, "--text", strings.TrimSpace(out))
	assert.True(t, errors.Is(err, padding.ErrInvalidPadding), "got %v", err)
}

func TestScheduleCommand(t *testing.T) {
	out, err := executeCommand(t, "schedule", "-k", "133457799BBCDFF1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2+des.Rounds)
	assert.Equal(t, "C0  F0CCAAF", lines[0])
	assert.Equal(t, "D0  556678F", lines[1])
	assert.Equal(t, "K1  1B02EFFC7072", lines[2])
	assert.Equal(t, "K2  79AED9DBC9E5", lines[3])
	assert.Equal(t, "K16 CB3D8B0E17F5", lines[17])
}

func TestStreamRoundTrip(t *testing.T) {
	plainText := []byte(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 100))
	c := des.New(0x0123456789ABCDEF)

	for _, armor := range []string{armorBinary, armorASCII85, armorPem} {
		for _, compression := range []string{compressNone, compressFlate, compressZstd} {
			t.Run(armor+"/"+compression, func(t *testing.T) {
				hdr := header{apiLevel: desApiLevel, fileName: "fox.txt", armor: armor, compression: compression}
				var enc bytes.Buffer
				cnt, err := encryptStream(bytes.NewReader(plainText), &enc, c, hdr)
				require.NoError(t, err)
				assert.NotZero(t, cnt)
				if compression == compressNone {
					assert.Equal(t, uint64(len(plainText)/des.BlockSize+1), cnt)
				}

				got, aRdr, err := readHeader(bufio.NewReader(&enc))
				require.NoError(t, err)
				assert.Equal(t, hdr, got)

				var dec bytes.Buffer
				dcnt, err := decryptStream(aRdr, &dec, c, got)
				require.NoError(t, err)
				assert.Equal(t, cnt, dcnt)
				assert.Equal(t, plainText, dec.Bytes())
			})
		}
	}
}

func TestBinaryHeaderLine(t *testing.T) {
	hdr := header{apiLevel: desApiLevel, fileName: "a.txt", armor: armorBinary, compression: compressZstd}
	var enc bytes.Buffer
	_, err := encryptStream(strings.NewReader("x"), &enc, des.New(1), hdr)
	require.NoError(t, err)

	line, err := enc.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "+DES|1|a.txt|b|zstd\n", line)
}

func TestReadHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", errBadHeader},
		{"no newline", "+DES|1|x|b|none", errBadHeader},
		{"wrong magic", "+TNT2|1|x|b|none\n", errBadHeader},
		{"too few fields", "+DES|1|b|none\n", errBadHeader},
		{"api level", "+DES|2|x|b|none\n", errApiLevel},
		{"bad api level", "+DES|one|x|b|none\n", errApiLevel},
		{"compression", "+DES|1|x|b|lzw\n", errUnknownCompression},
		{"encoding", "+DES|1|x|q|none\n", errBadHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := readHeader(bufio.NewReader(strings.NewReader(tt.in)))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecryptStreamWithWrongKey(t *testing.T) {
	hdr := header{apiLevel: desApiLevel, armor: armorBinary, compression: compressNone}
	plainText := []byte("attack at dawn")
	var enc bytes.Buffer
	_, err := encryptStream(bytes.NewReader(plainText), &enc, des.New(0x0123456789ABCDEF), hdr)
	require.NoError(t, err)

	got, aRdr, err := readHeader(bufio.NewReader(&enc))
	require.NoError(t, err)
	var dec bytes.Buffer
	_, err = decryptStream(aRdr, &dec, des.New(0xFEDCBA9876543210), got)
	if err != nil {
		assert.True(t, errors.Is(err, padding.ErrInvalidPadding), "got %v", err)
		return
	}
	assert.NotEqual(t, plainText, dec.Bytes())
}

func TestDecryptStreamTruncated(t *testing.T) {
	hdr := header{apiLevel: desApiLevel, armor: armorBinary, compression: compressNone}
	var dec bytes.Buffer
	_, err := decryptStream(bytes.NewReader(make([]byte, 12)), &dec, des.New(1), hdr)
	assert.True(t, errors.Is(err, cryptors.ErrTruncated), "got %v", err)
}

func TestCompressionCheck(t *testing.T) {
	for _, name := range []string{compressNone, compressFlate, compressZstd} {
		assert.NoError(t, checkCompression(name))
	}
	assert.True(t, errors.Is(checkCompression("gzip"), errUnknownCompression))

	hdr := header{apiLevel: desApiLevel, armor: armorBinary, compression: "gzip"}
	_, err := encryptStream(strings.NewReader("x"), new(bytes.Buffer), des.New(1), hdr)
	assert.True(t, errors.Is(err, errUnknownCompression), "got %v", err)
}
