package main

import (
	"encoding"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/go-errors/errors"
	"github.com/spf13/viper"

	"github.com/privacybydesign/credit"
	"github.com/privacybydesign/credit/internal/common"
)

const (
	formatCBOR = "cbor"
	formatJSON = "json"
)

type message interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

func loadParams() *credit.Params {
	seed := viper.GetString("params-seed")
	if seed == credit.DefaultParamsSeed {
		return credit.DefaultParams()
	}
	return credit.NewParams([]byte(seed))
}

func readMessage(path string, dst message) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer common.Close(f)
	data, err := io.ReadAll(f)
	if err != nil {
		return errors.WrapPrefix(err, "failed to read "+path, 0)
	}

	if viper.GetString("format") == formatJSON {
		err = json.Unmarshal(data, dst)
	} else {
		err = dst.UnmarshalBinary(data)
	}
	if err != nil {
		return errors.WrapPrefix(err, path, 0)
	}
	return nil
}

// writeMessage writes src to path, with permissions that only let the owner
// read it when secret is set.
func writeMessage(path string, src message, secret bool) error {
	var (
		data []byte
		err  error
	)
	if viper.GetString("format") == formatJSON {
		data, err = json.MarshalIndent(src, "", "  ")
	} else {
		data, err = src.MarshalBinary()
	}
	if err != nil {
		return err
	}
	perm := os.FileMode(0644)
	if secret {
		perm = 0600
	}
	return os.WriteFile(filepath.Clean(path), data, perm)
}
