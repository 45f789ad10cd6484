// Package document provides read-only handles to resume files on local disk
// or in memory.
package document

import (
	"bytes"
	"io"
	"os"
)

// File is a resume handle: its name, mime type, size and readable content.
type File struct {
	filename string

	src         io.ReaderAt
	closer      io.Closer
	name        string
	contentType string
	size        int64   // file size
	count       Counter // bytes read
}

// Open opens the file at filename. The content type comes from the extension
// and falls back to sniffing the first bytes.
func Open(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	contentType := TypeByName(fi.Name())
	if contentType == "" {
		contentType, err = ContentType(io.NewSectionReader(file, 0, fi.Size()))
		if err != nil {
			file.Close()
			return nil, err
		}
	}

	return &File{
		filename:    filename,
		src:         file,
		closer:      file,
		name:        fi.Name(),
		contentType: contentType,
		size:        fi.Size(),
	}, nil
}

// FromBytes wraps in-memory content. An empty contentType is resolved from
// the name.
func FromBytes(name, contentType string, data []byte) *File {
	if contentType == "" {
		contentType = TypeByName(name)
	}
	return &File{
		filename:    name,
		src:         bytes.NewReader(data),
		name:        name,
		contentType: contentType,
		size:        int64(len(data)),
	}
}

// Reader returns a new reader positioned at the start of the content. Every
// byte read through it is added to Count.
func (r *File) Reader() (io.Reader, error) {
	if r.src == nil {
		return nil, os.ErrInvalid
	}
	return &countingReader{
		file: r,
		rd:   io.NewSectionReader(r.src, 0, r.size),
	}, nil
}

func (r *File) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func (r *File) MD5() (string, string, error) {
	rd := io.NewSectionReader(r.src, 0, r.size)
	return MD5Sum(rd)
}

func (r *File) Filename() string {
	return r.filename
}

func (r *File) Name() string {
	return r.name
}

func (r *File) ContentType() string {
	return r.contentType
}

func (r *File) Size() int64 {
	return r.size
}

// Count reports the bytes read through all readers handed out so far.
func (r *File) Count() int64 {
	return r.count.Get()
}

type countingReader struct {
	file *File
	rd   io.Reader
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.rd.Read(p)
	r.file.count.Increment(int64(n))
	return n, err
}
