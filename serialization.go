package localsearch

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SERIALIZATION: Saving and Loading a Normalised Corpus
// ═══════════════════════════════════════════════════════════════════════════════
// A snapshot is a corpus that has already been parsed, normalised and indexed.
// Loading one skips JSON/XML decoding, tag stripping and trigram extraction.
//
// BINARY FORMAT (little endian):
// ------------------------------
// [Header]
//   - Magic:    "LSNP"
//   - Version:  uint16
//   - Flags:    uint16   (bit 0: built from an XML payload)
//   - NumDocs:  uint32
//
// [Documents] (for each document, in corpus order)
//   - Title:    [length: uint32][bytes]
//   - Content:  [length: uint32][bytes]
//   - URL:      [length: uint32][bytes]
//
// [Trigrams]
//   - NumTrigrams: uint32
//   - For each trigram (sorted):
//   - Runes:   3 × uint32
//   - Bitmap:  [length: uint32][roaring portable serialization]
//
// Document IDs in the bitmaps are positions in the Documents section, so the
// order of documents must survive the round trip exactly.
// ═══════════════════════════════════════════════════════════════════════════════

const (
	snapshotMagic   = "LSNP"
	snapshotVersion = 1
	flagFromXML     = 1 << 0
)

// EncodeSnapshot serializes a corpus to the snapshot format.
func EncodeSnapshot(c *Corpus) ([]byte, error) {
	buf := new(bytes.Buffer)
	e := &snapshotEncoder{buffer: buf}

	if err := e.encodeHeader(c); err != nil {
		return nil, err
	}
	for _, entry := range c.entries {
		if err := e.encodeDocument(entry.doc); err != nil {
			return nil, err
		}
	}
	if err := e.encodeTrigrams(c.index); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// snapshotEncoder accumulates the serialized corpus.
type snapshotEncoder struct {
	buffer *bytes.Buffer
}

func (e *snapshotEncoder) encodeHeader(c *Corpus) error {
	e.buffer.WriteString(snapshotMagic)

	var flags uint16
	if c.fromXML {
		flags |= flagFromXML
	}
	for _, v := range []any{uint16(snapshotVersion), flags, uint32(len(c.entries))} {
		if err := binary.Write(e.buffer, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func (e *snapshotEncoder) encodeDocument(doc Document) error {
	for _, field := range []string{doc.Title, doc.Content, doc.URL} {
		if err := e.writeBytes([]byte(field)); err != nil {
			return err
		}
	}
	return nil
}

// encodeTrigrams writes every posting bitmap. Trigrams are sorted so equal
// corpora produce byte-identical snapshots.
func (e *snapshotEncoder) encodeTrigrams(idx *TrigramIndex) error {
	keys := make([]trigram, 0, len(idx.DocBitmaps))
	for t := range idx.DocBitmaps {
		keys = append(keys, t)
	}
	sort.Slice(keys, func(i, j int) bool {
		for k := 0; k < 3; k++ {
			if keys[i][k] != keys[j][k] {
				return keys[i][k] < keys[j][k]
			}
		}
		return false
	})

	if err := binary.Write(e.buffer, binary.LittleEndian, uint32(len(keys))); err != nil {
		return err
	}
	for _, t := range keys {
		for _, r := range t {
			if err := binary.Write(e.buffer, binary.LittleEndian, uint32(r)); err != nil {
				return err
			}
		}
		data, err := idx.DocBitmaps[t].ToBytes()
		if err != nil {
			return fmt.Errorf("encode bitmap: %w", err)
		}
		if err := e.writeBytes(data); err != nil {
			return err
		}
	}
	return nil
}

// writeBytes writes a length-prefixed byte array
//
// Format: [length: 4 bytes][data: length bytes]
func (e *snapshotEncoder) writeBytes(data []byte) error {
	if err := binary.Write(e.buffer, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}
	_, err := e.buffer.Write(data)
	return err
}

// DecodeSnapshot rebuilds a corpus from snapshot bytes.
func DecodeSnapshot(data []byte) (*Corpus, error) {
	d := &snapshotDecoder{data: data}

	if string(d.next(len(snapshotMagic))) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrBadSnapshot)
	}
	version := d.uint16()
	flags := d.uint16()
	numDocs := int(d.uint32())
	if d.err != nil {
		return nil, d.err
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, version)
	}

	c := &Corpus{
		entries: make([]entry, 0, min(numDocs, len(data))),
		index:   NewTrigramIndex(),
		fromXML: flags&flagFromXML != 0,
	}
	for i := 0; i < numDocs; i++ {
		doc := Document{
			Title:   string(d.bytes()),
			Content: string(d.bytes()),
			URL:     string(d.bytes()),
		}
		if d.err != nil {
			return nil, d.err
		}
		c.entries = append(c.entries, newEntry(doc))
	}
	c.index.TotalDocs = numDocs

	numTrigrams := int(d.uint32())
	for i := 0; i < numTrigrams && d.err == nil; i++ {
		t := trigram{rune(d.uint32()), rune(d.uint32()), rune(d.uint32())}
		raw := d.bytes()
		if d.err != nil {
			break
		}
		bitmap := roaring.NewBitmap()
		if err := bitmap.UnmarshalBinary(raw); err != nil {
			return nil, fmt.Errorf("%w: trigram bitmap: %v", ErrBadSnapshot, err)
		}
		c.index.DocBitmaps[t] = bitmap
	}
	if d.err != nil {
		return nil, d.err
	}
	return c, nil
}

// snapshotDecoder reads sequentially, remembering the first short read.
type snapshotDecoder struct {
	data   []byte
	offset int
	err    error
}

func (d *snapshotDecoder) next(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || d.offset+n > len(d.data) {
		d.err = fmt.Errorf("%w: truncated at byte %d", ErrBadSnapshot, d.offset)
		return nil
	}
	b := d.data[d.offset : d.offset+n]
	d.offset += n
	return b
}

func (d *snapshotDecoder) uint16() uint16 {
	b := d.next(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (d *snapshotDecoder) uint32() uint32 {
	b := d.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// bytes reads a length-prefixed byte array.
func (d *snapshotDecoder) bytes() []byte {
	n := int(d.uint32())
	return d.next(n)
}
