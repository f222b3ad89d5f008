package spatial

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// Magic is the 8-byte file signature for the spatial index format.
var Magic = [8]byte{'E', 'F', 'S', 'P', 'I', 'D', 'X', 0}

const (
	// FormatVersion is the version this package writes. Readers must
	// also accept v1 (no flags, no metadata section).
	FormatVersion = 2

	flagHasMetadata = 1 << 0
)

// SourceMetadata records build provenance: the dataset this index was
// built from, identified by content hash, and the release it shipped
// with. Used by VerifyFreshness.
type SourceMetadata struct {
	SourceSHA256  [32]byte
	ReleaseTag    string
	BuildUnixTime int64
}

// FormatErrorKind enumerates the spatial-index read-path error taxonomy
// from spec §7.
type FormatErrorKind int

const (
	BadMagic FormatErrorKind = iota
	UnsupportedVersion
	Truncated
	ChecksumMismatch
)

// FormatError is returned by Read on a malformed or unreadable index
// file. Per spec §7 it is treated as equivalent to Missing for
// orchestration purposes (the caller should rebuild).
type FormatError struct {
	Kind    FormatErrorKind
	Version uint8
	Message string
}

func (e *FormatError) Error() string {
	if e.Kind == UnsupportedVersion {
		return fmt.Sprintf("unsupported spatial index version %d", e.Version)
	}
	return e.Message
}

// flatNode is the pre-order, index-addressed record written to disk:
// internal nodes reference children by their position in this slice.
type flatNode struct {
	axis   uint8
	split  float64
	left   uint32
	right  uint32
	bucket []entry
}

// flatten lays n out in pre-order, resolving each child's array index as
// it is appended. The reader decodes the node records in one forward pass
// and then links children by those stored indices (see unflatten).
func flatten(n *node) []flatNode {
	var out []flatNode
	var walk func(n *node) uint32
	walk = func(n *node) uint32 {
		idx := uint32(len(out))
		if n.axis == axisLeaf {
			out = append(out, flatNode{axis: axisLeaf, bucket: n.bucket})
			return idx
		}
		out = append(out, flatNode{axis: n.axis, split: n.split})
		left := walk(n.left)
		right := walk(n.right)
		out[idx].left = left
		out[idx].right = right
		return idx
	}
	if n != nil {
		walk(n)
	}
	return out
}

func unflatten(nodes []flatNode, idx uint32) *node {
	if int(idx) >= len(nodes) {
		return nil
	}
	fn := nodes[idx]
	if fn.axis == axisLeaf {
		return &node{axis: axisLeaf, bucket: fn.bucket}
	}
	return &node{
		axis:  fn.axis,
		split: fn.split,
		left:  unflatten(nodes, fn.left),
		right: unflatten(nodes, fn.right),
	}
}

// Write serializes idx to w in the v2 format, with a metadata section
// when meta is non-nil. Writers must always emit v2 with metadata when
// source metadata is available.
func Write(w io.Writer, idx *Index, meta *SourceMetadata) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(Magic[:]); err != nil {
		return err
	}
	if err := bw.WriteByte(FormatVersion); err != nil {
		return err
	}
	var flags uint8
	if meta != nil {
		flags |= flagHasMetadata
	}
	if err := bw.WriteByte(flags); err != nil {
		return err
	}

	nodes := flatten(idx.root)
	if err := writeU32(bw, uint32(len(nodes))); err != nil {
		return err
	}
	if err := writeU32(bw, uint32(idx.population)); err != nil {
		return err
	}

	if meta != nil {
		if _, err := bw.Write(meta.SourceSHA256[:]); err != nil {
			return err
		}
		tag := []byte(meta.ReleaseTag)
		if len(tag) > 255 {
			tag = tag[:255]
		}
		if err := bw.WriteByte(byte(len(tag))); err != nil {
			return err
		}
		if _, err := bw.Write(tag); err != nil {
			return err
		}
		if err := writeI64(bw, meta.BuildUnixTime); err != nil {
			return err
		}
	}

	for _, n := range nodes {
		if err := writeNode(bw, n); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeNode(bw *bufio.Writer, n flatNode) error {
	if err := bw.WriteByte(n.axis); err != nil {
		return err
	}
	if n.axis == axisLeaf {
		if err := writeU32(bw, uint32(len(n.bucket))); err != nil {
			return err
		}
		for _, e := range n.bucket {
			if err := writeU32(bw, uint32(e.id)); err != nil {
				return err
			}
			for _, v := range []float64{e.pos.X, e.pos.Y, e.pos.Z} {
				if err := writeF64(bw, v); err != nil {
					return err
				}
			}
			temp := math.NaN()
			if e.hasTemp {
				temp = e.minTemp
			}
			if err := writeF64(bw, temp); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeF64(bw, n.split); err != nil {
		return err
	}
	if err := writeU32(bw, n.left); err != nil {
		return err
	}
	return writeU32(bw, n.right)
}

// Read parses a spatial index from r, accepting both v1 (no flags, no
// metadata section) and v2.
func Read(r io.Reader) (*Index, *SourceMetadata, error) {
	br := bufio.NewReader(r)

	var magic [8]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, nil, &FormatError{Kind: Truncated, Message: "short read on magic"}
	}
	if magic != Magic {
		return nil, nil, &FormatError{Kind: BadMagic, Message: "bad magic"}
	}

	version, err := br.ReadByte()
	if err != nil {
		return nil, nil, &FormatError{Kind: Truncated, Message: "short read on version"}
	}
	if version != 1 && version != 2 {
		return nil, nil, &FormatError{Kind: UnsupportedVersion, Version: version}
	}

	var flags byte
	if version >= 2 {
		flags, err = br.ReadByte()
		if err != nil {
			return nil, nil, &FormatError{Kind: Truncated, Message: "short read on flags"}
		}
	}

	nodeCount, err := readU32(br)
	if err != nil {
		return nil, nil, &FormatError{Kind: Truncated, Message: "short read on node_count"}
	}
	systemCount, err := readU32(br)
	if err != nil {
		return nil, nil, &FormatError{Kind: Truncated, Message: "short read on system_count"}
	}

	var meta *SourceMetadata
	if flags&flagHasMetadata != 0 {
		m := &SourceMetadata{}
		if _, err := io.ReadFull(br, m.SourceSHA256[:]); err != nil {
			return nil, nil, &FormatError{Kind: Truncated, Message: "short read on source sha256"}
		}
		tagLen, err := br.ReadByte()
		if err != nil {
			return nil, nil, &FormatError{Kind: Truncated, Message: "short read on release tag length"}
		}
		tag := make([]byte, tagLen)
		if _, err := io.ReadFull(br, tag); err != nil {
			return nil, nil, &FormatError{Kind: Truncated, Message: "short read on release tag"}
		}
		m.ReleaseTag = string(tag)
		m.BuildUnixTime, err = readI64(br)
		if err != nil {
			return nil, nil, &FormatError{Kind: Truncated, Message: "short read on build timestamp"}
		}
		meta = m
	}

	nodes := make([]flatNode, nodeCount)
	for i := range nodes {
		axis, err := br.ReadByte()
		if err != nil {
			return nil, nil, &FormatError{Kind: Truncated, Message: "short read on node axis"}
		}
		if axis == axisLeaf {
			bucketLen, err := readU32(br)
			if err != nil {
				return nil, nil, &FormatError{Kind: Truncated, Message: "short read on bucket length"}
			}
			bucket := make([]entry, bucketLen)
			for j := range bucket {
				id, err := readU32(br)
				if err != nil {
					return nil, nil, &FormatError{Kind: Truncated, Message: "short read on bucket entry id"}
				}
				x, err1 := readF64(br)
				y, err2 := readF64(br)
				z, err3 := readF64(br)
				temp, err4 := readF64(br)
				if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
					return nil, nil, &FormatError{Kind: Truncated, Message: "short read on bucket entry position"}
				}
				bucket[j] = entry{
					id:      starmap.SystemID(id),
					pos:     starmap.Position{X: x, Y: y, Z: z},
					minTemp: temp,
					hasTemp: !math.IsNaN(temp),
				}
			}
			nodes[i] = flatNode{axis: axisLeaf, bucket: bucket}
			continue
		}

		split, err := readF64(br)
		if err != nil {
			return nil, nil, &FormatError{Kind: Truncated, Message: "short read on split"}
		}
		left, err := readU32(br)
		if err != nil {
			return nil, nil, &FormatError{Kind: Truncated, Message: "short read on left index"}
		}
		right, err := readU32(br)
		if err != nil {
			return nil, nil, &FormatError{Kind: Truncated, Message: "short read on right index"}
		}
		nodes[i] = flatNode{axis: axis, split: split, left: left, right: right}
	}

	var root *node
	if len(nodes) > 0 {
		root = unflatten(nodes, 0)
	}

	return &Index{root: root, population: int(systemCount)}, meta, nil
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeI64(w io.Writer, v int64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

func writeF64(w io.Writer, v float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	_, err := w.Write(buf[:])
	return err
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readI64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

func readF64(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}
