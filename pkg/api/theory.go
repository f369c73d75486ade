package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/james-see/muco/pkg/theory"
)

// requireQuery fetches a mandatory query parameter, answering 400 when it
// is absent.
func requireQuery(c *gin.Context, names ...string) ([]string, bool) {
	values := make([]string, len(names))
	for i, name := range names {
		v := c.Query(name)
		if v == "" {
			badRequest(c, fmt.Errorf("missing query parameter %q", name))
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

// handlePitch godoc
// @Summary Describe a pitch
// @Description Parses a pitch in scientific pitch notation and returns its MIDI number, frequency and enharmonic spellings
// @Tags theory
// @Produce json
// @Param note query string true "Pitch, e.g. C#4 (encode # as %23)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/pitch [get]
func (s *Server) handlePitch(c *gin.Context) {
	q, ok := requireQuery(c, "note")
	if !ok {
		return
	}
	p, err := theory.ParsePitch(q[0])
	if err != nil {
		badRequest(c, err)
		return
	}
	midi, err := p.MIDINumber()
	if err != nil {
		badRequest(c, err)
		return
	}
	freq, err := p.Frequency()
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pitch":       p.String(),
		"class":       p.Class.String(),
		"octave":      p.Octave,
		"midi":        midi,
		"frequency":   freq,
		"enharmonics": theory.Names(s.theory.Enharmonics.AllEnharmonics(p.Class)),
	})
}

// handleEnharmonics godoc
// @Summary Enharmonic spellings
// @Description Returns the preferred enharmonic and every spelling of the same chromatic index
// @Tags theory
// @Produce json
// @Param note query string true "Pitch class, e.g. Db"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/enharmonics [get]
func (s *Server) handleEnharmonics(c *gin.Context) {
	q, ok := requireQuery(c, "note")
	if !ok {
		return
	}
	pc, err := theory.ParsePitchClass(q[0])
	if err != nil {
		badRequest(c, err)
		return
	}
	er := s.theory.Enharmonics
	c.JSON(http.StatusOK, gin.H{
		"note":           pc.String(),
		"has_enharmonic": er.HasEnharmonic(pc),
		"enharmonic":     er.EnharmonicOf(pc).String(),
		"all":            theory.Names(er.AllEnharmonics(pc)),
	})
}

// handleInterval godoc
// @Summary Interval between two pitches
// @Tags theory
// @Produce json
// @Param low query string true "First pitch, e.g. C4"
// @Param high query string true "Second pitch, e.g. G4"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/interval [get]
func (s *Server) handleInterval(c *gin.Context) {
	low, high, ok := pitchPair(c)
	if !ok {
		return
	}
	ie := s.theory.Intervals
	name, err := ie.Name(low, high)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"low":       low.String(),
		"high":      high.String(),
		"semitones": name.Semitones(),
		"name":      name.String(),
		"direction": ie.Direction(low, high).String(),
	})
}

// handleInvert godoc
// @Summary Invert an interval
// @Tags theory
// @Produce json
// @Param low query string true "First pitch"
// @Param high query string true "Second pitch"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/v1/invert [get]
func (s *Server) handleInvert(c *gin.Context) {
	low, high, ok := pitchPair(c)
	if !ok {
		return
	}
	name, err := s.theory.Intervals.Name(low, high)
	if err != nil {
		badRequest(c, err)
		return
	}
	inv, err := s.theory.Intervals.Invert(low, high)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"interval":  name.String(),
		"inversion": inv.String(),
	})
}

func pitchPair(c *gin.Context) (theory.Pitch, theory.Pitch, bool) {
	q, ok := requireQuery(c, "low", "high")
	if !ok {
		return theory.Pitch{}, theory.Pitch{}, false
	}
	low, err := theory.ParsePitch(q[0])
	if err != nil {
		badRequest(c, err)
		return theory.Pitch{}, theory.Pitch{}, false
	}
	high, err := theory.ParsePitch(q[1])
	if err != nil {
		badRequest(c, err)
		return theory.Pitch{}, theory.Pitch{}, false
	}
	return low, high, true
}

// handleTranspose godoc
// @Summary Transpose a note
// @Description Moves a pitch or pitch class up or down by a named interval
// @Tags theory
// @Produce json
// @Param note query string true "Pitch class (Eb) or pitch (Eb4)"
// @Param interval query string true "Interval name, shorthand or semitones, e.g. P5"
// @Param direction query string false "up (default) or down"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/v1/transpose [get]
func (s *Server) handleTranspose(c *gin.Context) {
	q, ok := requireQuery(c, "note", "interval")
	if !ok {
		return
	}
	dir, err := theory.ParseDirection(c.Query("direction"))
	if err != nil {
		badRequest(c, err)
		return
	}
	out, err := s.theory.Transpose(q[0], q[1], dir)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"note":      q[0],
		"interval":  q[1],
		"direction": dir.String(),
		"result":    out,
	})
}

// handleCircle godoc
// @Summary Circle of fifths
// @Description Returns the major tonics and their relative minors by ascending fifths from C
// @Tags theory
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/circle [get]
func (s *Server) handleCircle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"majors": entryNames(s.theory.Circle.Majors()),
		"minors": entryNames(s.theory.Circle.RelativeMinors()),
	})
}

func entryNames(entries []theory.CircleEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.String()
	}
	return names
}

// handleKeySignature godoc
// @Summary Key signature of a key
// @Tags theory
// @Produce json
// @Param tonic query string true "Tonic, e.g. Eb"
// @Param mode query string false "major (default) or minor"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/keysignature [get]
func (s *Server) handleKeySignature(c *gin.Context) {
	q, ok := requireQuery(c, "tonic")
	if !ok {
		return
	}
	ks, err := s.theory.KeySignatureOf(q[0], c.DefaultQuery("mode", "major"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tonic":      ks.Tonic.String(),
		"mode":       ks.Mode.String(),
		"signature":  ks.String(),
		"count":      ks.Count,
		"accidental": ks.Accidental.String(),
		"notes":      theory.Names(s.theory.Keys.SignatureNotes(ks)),
	})
}

// handleChord godoc
// @Summary Build a chord
// @Tags theory
// @Produce json
// @Param root query string true "Root, e.g. Bb4"
// @Param type query string true "Chord type, e.g. minor7"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/chord [get]
func (s *Server) handleChord(c *gin.Context) {
	q, ok := requireQuery(c, "root", "type")
	if !ok {
		return
	}
	notes, err := s.theory.ChordOf(q[0], q[1])
	if err != nil {
		badRequest(c, err)
		return
	}
	ct, _ := theory.ParseChordType(q[1])
	c.JSON(http.StatusOK, gin.H{
		"root":  q[0],
		"type":  ct.String(),
		"notes": theory.Names(notes),
	})
}

// listChordTypes godoc
// @Summary List chord types
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/chords [get]
func listChordTypes(c *gin.Context) {
	names := make([]string, len(theory.ChordTypes))
	for i, ct := range theory.ChordTypes {
		names[i] = ct.String()
	}
	c.JSON(http.StatusOK, gin.H{"types": names})
}

// handleScale godoc
// @Summary Build a scale
// @Tags theory
// @Produce json
// @Param root query string true "Root, e.g. F#"
// @Param mode query string false "major (default) or minor"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/scale [get]
func (s *Server) handleScale(c *gin.Context) {
	q, ok := requireQuery(c, "root")
	if !ok {
		return
	}
	mode := c.DefaultQuery("mode", "major")
	notes, err := s.theory.ScaleOf(q[0], mode)
	if err != nil {
		badRequest(c, err)
		return
	}
	m, _ := theory.ParseMode(mode)
	c.JSON(http.StatusOK, gin.H{
		"root":  q[0],
		"mode":  m.String(),
		"notes": theory.Names(notes),
	})
}
