/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"io"

	"github.com/bgallie/filters/flate"
	"github.com/friendsofgo/errors"
	"github.com/klauspost/compress/zstd"
)

const (
	compressNone  = "none"
	compressFlate = "flate"
	compressZstd  = "zstd"
)

var errUnknownCompression = errors.New("unknown compression")

func checkCompression(name string) error {
	switch name {
	case compressNone, compressFlate, compressZstd:
		return nil
	}
	return errors.Wrapf(errUnknownCompression, "%q (want none, flate or zstd)", name)
}

// compressor returns a reader producing rdr compressed with the named method.
func compressor(name string, rdr io.Reader) (io.Reader, error) {
	switch name {
	case compressNone:
		return rdr, nil
	case compressFlate:
		return flate.ToFlate(rdr), nil
	case compressZstd:
		return toZstd(rdr), nil
	}
	return nil, checkCompression(name)
}

// decompressor undoes compressor.
func decompressor(name string, rdr io.Reader) (io.Reader, error) {
	switch name {
	case compressNone:
		return rdr, nil
	case compressFlate:
		return flate.FromFlate(rdr), nil
	case compressZstd:
		return fromZstd(rdr), nil
	}
	return nil, checkCompression(name)
}

// toZstd compresses rdr using zstd.  The compressed data can be read using
// the returned PipeReader.
func toZstd(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	go func() {
		enc, err := zstd.NewWriter(rWrtr)
		if err != nil {
			rWrtr.CloseWithError(err)
			return
		}

		if _, err = io.Copy(enc, rdr); err != nil {
			enc.Close()
			rWrtr.CloseWithError(err)
			return
		}
		rWrtr.CloseWithError(enc.Close())
	}()
	return rRdr
}

// fromZstd decompresses rdr.  The plaintext can be read using the returned
// PipeReader.
func fromZstd(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	go func() {
		dec, err := zstd.NewReader(rdr)
		if err != nil {
			rWrtr.CloseWithError(err)
			return
		}
		defer dec.Close()

		_, err = io.Copy(rWrtr, dec)
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}
