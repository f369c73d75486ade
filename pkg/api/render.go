package api

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/james-see/muco/pkg/converter"
	"github.com/james-see/muco/pkg/logger"
	"github.com/james-see/muco/pkg/notation"
)

// maxUploadBytes caps request bodies for render and convert.
const maxUploadBytes = 8 << 20

type renderRequest struct {
	Notes string  `json:"notes"`
	Tempo float64 `json:"tempo"`
}

// handleRender godoc
// @Summary Render a note sequence
// @Description Renders notation text ("C4:quarter E4:eighth") to a MIDI file, WAV audio or normalised notation
// @Tags render
// @Accept plain
// @Accept json
// @Produce application/octet-stream
// @Param format path string true "midi, wav or notation"
// @Param tempo query number false "Quarter notes per minute, at least 20"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/render/{format} [post]
func (s *Server) handleRender(c *gin.Context) {
	format := converter.ParseFormat(c.Param("format"))
	if format == converter.FormatUnknown {
		badRequest(c, fmt.Errorf("unsupported output format: %s", c.Param("format")))
		return
	}

	req, err := readRenderRequest(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	opts := s.opts
	if req.Tempo != 0 {
		opts.Tempo = req.Tempo
	}
	if v := c.Query("tempo"); v != "" {
		tempo, err := strconv.ParseFloat(v, 64)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid tempo %q", v))
			return
		}
		opts.Tempo = tempo
	}
	if math.IsNaN(opts.Tempo) || math.IsInf(opts.Tempo, 0) || opts.Tempo < converter.MinTempo {
		badRequest(c, fmt.Errorf("tempo must be at least %d BPM, got %v", converter.MinTempo, opts.Tempo))
		return
	}

	seq, err := notation.ParseSequence(req.Notes)
	if err != nil {
		badRequest(c, err)
		return
	}

	data, err := converter.New(opts).Render(seq, format)
	if errors.Is(err, converter.ErrSequenceTooLong) {
		badRequest(c, err)
		return
	}
	if err != nil {
		logger.Error("Render failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sequence%s", format.Extension()))
	c.Data(http.StatusOK, contentType(format), data)
}

// readRenderRequest accepts a JSON body or plain notation text.
func readRenderRequest(c *gin.Context) (renderRequest, error) {
	var req renderRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, fmt.Errorf("invalid JSON body: %w", err)
		}
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return req, errors.New("failed to read request body")
		}
		req.Notes = string(body)
	}
	if strings.TrimSpace(req.Notes) == "" {
		return req, errors.New("no notes given")
	}
	return req, nil
}

// handleConvert godoc
// @Summary Convert a file
// @Description Upload notation text or a MIDI file and receive it as MIDI, WAV or notation
// @Tags convert
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "Notation (.mcn) or MIDI file to convert"
// @Param to query string false "Target format: midi, wav (default) or notation"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert [post]
func (s *Server) handleConvert(c *gin.Context) {
	to := converter.ParseFormat(c.DefaultQuery("to", "wav"))
	if to == converter.FormatUnknown {
		badRequest(c, fmt.Errorf("unsupported output format: %s", c.Query("to")))
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	result, err := converter.New(s.opts).ConvertNamed(data, header.Filename, to)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Data(http.StatusOK, contentType(result.Format), result.Data)
}

// listFormats godoc
// @Summary List supported formats
// @Description Returns a list of supported file formats
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats":     []string{"notation", "midi", "wav"},
		"conversions": converter.GetSupportedConversions(),
	})
}

func contentType(f converter.Format) string {
	switch f {
	case converter.FormatMIDI:
		return "audio/midi"
	case converter.FormatWAV:
		return "audio/wav"
	case converter.FormatNotation:
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}
