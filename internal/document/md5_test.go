package document

import (
	"strings"
	"testing"
)

func TestMD5Sum(t *testing.T) {
	b64, hex, err := MD5SumFile("./testdata/resume.pdf")
	if err != nil {
		t.FailNow()
	}
	t.Log("base64:", b64, "hex:", hex)
	if b64 != "XMXW8ZQjssoIM6smb2dxqg==" || hex != "5cc5d6f19423b2ca0833ab266f6771aa" {
		t.FailNow()
	}
}

func TestMD5SumEmpty(t *testing.T) {
	_, hex, err := MD5Sum(strings.NewReader(""))
	if err != nil || hex != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Fatalf("hex: %s err: %v", hex, err)
	}
}

func TestMD5SumFileMissing(t *testing.T) {
	if _, _, err := MD5SumFile("./testdata/missing.pdf"); err == nil {
		t.FailNow()
	}
}
