// Package replay records the inputs of a session so it can be re-simulated deterministically.
package replay

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/input"
	"github.com/oomph-ac/mazeball/simulation"
	"github.com/zeebo/xxh3"
)

const (
	recordFrame byte = 'F'
	recordEnd   byte = 'E'

	frameSize = 1 + 8 + 8*3 + 1
	endSize   = 1 + 8 + 8*3 + 8
)

var (
	ErrTruncated     = errors.New("replay record is truncated")
	ErrUnknownRecord = errors.New("unknown replay record")
)

// Frame is the input consumed by a single tick.
type Frame struct {
	Tick   uint64
	Dt     float64
	Intent input.Intent
	// Reset is set when the tick began by resuming from a win.
	Reset bool
}

// FrameOf returns the frame that reproduces the tick r was produced by.
func FrameOf(r simulation.RenderableState) Frame {
	return Frame{Tick: r.Tick, Dt: r.Dt, Intent: r.Intent, Reset: r.Reset}
}

// Encode appends the binary form of the frame to buf.
func (f Frame) Encode(buf *bytes.Buffer) {
	var flags byte
	if f.Reset {
		flags = 1
	}
	buf.WriteByte(recordFrame)
	writeUint64(buf, f.Tick)
	writeFloat(buf, f.Dt)
	writeFloat(buf, f.Intent.X)
	writeFloat(buf, f.Intent.Z)
	buf.WriteByte(flags)
}

// Final is the trailing record of a recording, describing where the avatar ended up.
type Final struct {
	Tick     uint64
	Position mgl64.Vec3
	Checksum uint64
}

// FinalOf returns the final record for the state r.
func FinalOf(r simulation.RenderableState) Final {
	return Final{Tick: r.Tick, Position: r.Position, Checksum: Checksum(r)}
}

// Encode appends the binary form of the final record to buf.
func (f Final) Encode(buf *bytes.Buffer) {
	buf.WriteByte(recordEnd)
	writeUint64(buf, f.Tick)
	for _, v := range f.Position {
		writeFloat(buf, v)
	}
	writeUint64(buf, f.Checksum)
}

// Checksum hashes the exact position and velocity of a tick.
func Checksum(r simulation.RenderableState) uint64 {
	var b [48]byte
	for i, v := range [6]float64{r.Position[0], r.Position[1], r.Position[2], r.Velocity[0], r.Velocity[1], r.Velocity[2]} {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return xxh3.Hash(b[:])
}

// decodeRecords decodes frames until the data or the final record is reached.
func decodeRecords(buf *bytes.Buffer) ([]Frame, *Final, error) {
	var frames []Frame
	for buf.Len() > 0 {
		id, _ := buf.ReadByte()
		switch id {
		case recordFrame:
			if buf.Len() < frameSize-1 {
				return frames, nil, fmt.Errorf("frame %d: %w", len(frames), ErrTruncated)
			}
			f := Frame{
				Tick: readUint64(buf),
				Dt:   readFloat(buf),
			}
			f.Intent.X, f.Intent.Z = readFloat(buf), readFloat(buf)
			flags, _ := buf.ReadByte()
			f.Reset = flags&1 != 0
			frames = append(frames, f)
		case recordEnd:
			if buf.Len() < endSize-1 {
				return frames, nil, fmt.Errorf("final record: %w", ErrTruncated)
			}
			final := &Final{Tick: readUint64(buf)}
			for i := range final.Position {
				final.Position[i] = readFloat(buf)
			}
			final.Checksum = readUint64(buf)
			return frames, final, nil
		default:
			return frames, nil, fmt.Errorf("record id %#x: %w", id, ErrUnknownRecord)
		}
	}
	return frames, nil, nil
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}

func writeFloat(buf *bytes.Buffer, v float64) {
	writeUint64(buf, math.Float64bits(v))
}

func readUint64(buf *bytes.Buffer) uint64 {
	return binary.LittleEndian.Uint64(buf.Next(8))
}

func readFloat(buf *bytes.Buffer) float64 {
	return math.Float64frombits(readUint64(buf))
}
