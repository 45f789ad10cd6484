package document

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"io"
	"os"
)

// MD5Sum computes the MD5 digest of r and returns it base64 encoded (the
// Content-MD5 header format) and hex encoded.
func MD5Sum(r io.Reader) (string, string, error) {
	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", "", err
	}
	sum := h.Sum(nil)
	return base64.StdEncoding.EncodeToString(sum), hex.EncodeToString(sum), nil
}

// MD5SumFile computes and returns checksums for file in base64 and hex.
func MD5SumFile(file string) (string, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", "", err
	}
	b64, hex, err := MD5Sum(f)
	f.Close()

	return b64, hex, err
}
