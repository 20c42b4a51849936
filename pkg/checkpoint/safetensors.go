// Package checkpoint reads and writes safetensors files and rearranges their
// keys. Tensor bytes are moved verbatim; dtypes and shapes are never
// interpreted beyond size checks.
package checkpoint

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/user/flowclip/pkg/ports"
)

var (
	// ErrInvalidFile is returned for data that is not a valid safetensors file.
	ErrInvalidFile = errors.New("checkpoint: invalid safetensors file")

	// ErrKeyCollision is returned when two keys map to the same name.
	ErrKeyCollision = errors.New("checkpoint: key collision")
)

const (
	metadataKey   = "__metadata__"
	maxHeaderSize = 100 << 20
	headerAlign   = 8
)

// dtypeSizes maps known dtypes to their element size in bytes.
var dtypeSizes = map[string]int64{
	"BOOL": 1, "U8": 1, "I8": 1, "F8_E4M3": 1, "F8_E5M2": 1,
	"U16": 2, "I16": 2, "F16": 2, "BF16": 2,
	"U32": 4, "I32": 4, "F32": 4,
	"U64": 8, "I64": 8, "F64": 8,
}

// Tensor is one named entry of a checkpoint.
type Tensor struct {
	DType string
	Shape []int64
	Data  []byte
}

// File is a decoded safetensors checkpoint.
type File struct {
	Metadata map[string]string
	Tensors  map[string]Tensor
}

// NewFile creates an empty checkpoint.
func NewFile() *File {
	return &File{Tensors: make(map[string]Tensor)}
}

// Keys returns the tensor names in sorted order.
func (f *File) Keys() []string {
	keys := make([]string, 0, len(f.Tensors))
	for k := range f.Tensors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Size returns the total tensor payload in bytes.
func (f *File) Size() int64 {
	var n int64
	for _, t := range f.Tensors {
		n += int64(len(t.Data))
	}
	return n
}

// derive creates an empty file sharing f's metadata.
func (f *File) derive() *File {
	out := NewFile()
	if f.Metadata != nil {
		out.Metadata = make(map[string]string, len(f.Metadata))
		for k, v := range f.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

type tensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// Decode parses a safetensors file. Tensor data slices alias data.
func Decode(data []byte) (*File, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: file shorter than header length", ErrInvalidFile)
	}
	n := binary.LittleEndian.Uint64(data[:8])
	if n > maxHeaderSize || n > uint64(len(data)-8) {
		return nil, fmt.Errorf("%w: header length %d out of range", ErrInvalidFile, n)
	}
	header := data[8 : 8+n]
	buf := data[8+n:]

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(header, &raw); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidFile, err)
	}

	f := NewFile()
	for name, msg := range raw {
		if name == metadataKey {
			if err := json.Unmarshal(msg, &f.Metadata); err != nil {
				return nil, fmt.Errorf("%w: metadata: %v", ErrInvalidFile, err)
			}
			continue
		}

		var th tensorHeader
		if err := json.Unmarshal(msg, &th); err != nil {
			return nil, fmt.Errorf("%w: tensor %q: %v", ErrInvalidFile, name, err)
		}
		begin, end := th.DataOffsets[0], th.DataOffsets[1]
		if begin < 0 || end < begin || end > int64(len(buf)) {
			return nil, fmt.Errorf("%w: tensor %q offsets [%d,%d) outside %d data bytes",
				ErrInvalidFile, name, begin, end, len(buf))
		}
		if want, ok := byteLen(th.DType, th.Shape); ok && want != end-begin {
			return nil, fmt.Errorf("%w: tensor %q holds %d bytes, %s%v needs %d",
				ErrInvalidFile, name, end-begin, th.DType, th.Shape, want)
		}
		if th.Shape == nil {
			th.Shape = []int64{}
		}
		f.Tensors[name] = Tensor{DType: th.DType, Shape: th.Shape, Data: buf[begin:end]}
	}
	return f, nil
}

// Encode serialises f. Tensors are laid out in key order and the header is
// padded with spaces to an 8-byte boundary.
func (f *File) Encode() ([]byte, error) {
	keys := f.Keys()
	header := make(map[string]any, len(keys)+1)
	if len(f.Metadata) > 0 {
		header[metadataKey] = f.Metadata
	}

	var offset int64
	for _, k := range keys {
		t := f.Tensors[k]
		if want, ok := byteLen(t.DType, t.Shape); ok && want != int64(len(t.Data)) {
			return nil, fmt.Errorf("%w: tensor %q holds %d bytes, %s%v needs %d",
				ErrInvalidFile, k, len(t.Data), t.DType, t.Shape, want)
		}
		shape := t.Shape
		if shape == nil {
			shape = []int64{}
		}
		end := offset + int64(len(t.Data))
		header[k] = tensorHeader{DType: t.DType, Shape: shape, DataOffsets: [2]int64{offset, end}}
		offset = end
	}

	hdr, err := json.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	if pad := len(hdr) % headerAlign; pad != 0 {
		hdr = append(hdr, strings.Repeat(" ", headerAlign-pad)...)
	}

	out := make([]byte, 8, 8+int64(len(hdr))+offset)
	binary.LittleEndian.PutUint64(out, uint64(len(hdr)))
	out = append(out, hdr...)
	for _, k := range keys {
		out = append(out, f.Tensors[k].Data...)
	}
	return out, nil
}

// byteLen returns the payload size of a tensor when dtype is known.
func byteLen(dtype string, shape []int64) (int64, bool) {
	size, ok := dtypeSizes[dtype]
	if !ok {
		return 0, false
	}
	n := size
	for _, d := range shape {
		if d < 0 {
			return -1, true
		}
		n *= d
	}
	return n, true
}

// Load reads and decodes the checkpoint at path.
func Load(fs ports.FileSystem, path string) (*File, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Save encodes f and writes it to path.
func Save(fs ports.FileSystem, path string, f *File) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	return fs.WriteFile(path, data)
}
