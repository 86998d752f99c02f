package main

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"
)

const (
	sampleRate = 44100
	chimeGain  = 0.3
)

// chimeNotes are the frequencies of the win chime, played one after another.
var chimeNotes = [...]float64{523.25, 659.25, 783.99, 1046.5}

// chime plays a short synthesized arpeggio.
type chime struct {
	log    *logrus.Logger
	player *audio.Player
}

func newChime(ctx *audio.Context, log *logrus.Logger) *chime {
	p := ctx.NewPlayerFromBytes(synthesizeChime())
	p.SetVolume(chimeGain)
	return &chime{log: log, player: p}
}

// Play restarts the chime from the beginning.
func (c *chime) Play() {
	if err := c.player.Rewind(); err != nil {
		c.log.Debugf("unable to rewind chime: %v", err)
		return
	}
	c.player.Play()
}

// synthesizeChime renders the notes as 16-bit little endian stereo PCM, each note fading out
// exponentially.
func synthesizeChime() []byte {
	const noteLength = sampleRate / 8
	pcm := make([]byte, 0, len(chimeNotes)*noteLength*4)
	for _, freq := range chimeNotes {
		for i := range noteLength {
			t := float64(i) / sampleRate
			v := math.Sin(2*math.Pi*freq*t) * math.Exp(-t*12)
			s := uint16(int16(v * math.MaxInt16))
			pcm = binary.LittleEndian.AppendUint16(pcm, s)
			pcm = binary.LittleEndian.AppendUint16(pcm, s)
		}
	}
	return pcm
}
