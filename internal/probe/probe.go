// Package probe extracts technical metadata from video files by invoking
// ffprobe as a child process.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"time"
)

// ErrNoVideoStream indicates the container holds no video stream.
var ErrNoVideoStream = errors.New("no video stream found")

// Result holds the metadata extracted from a video file.
type Result struct {
	DurationMinutes int    // rounded from the container duration
	Resolution      string // WIDTHxHEIGHT of the first video stream
	Codec           string // codec name of the first video stream
}

// FFprobe probes video files with the ffprobe binary.
type FFprobe struct {
	binary  string
	timeout time.Duration
}

// New creates an FFprobe prober. binary is the executable name or path;
// timeout bounds each invocation so a hung probe cannot stall a scan.
func New(binary string, timeout time.Duration) *FFprobe {
	if binary == "" {
		binary = "ffprobe"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FFprobe{binary: binary, timeout: timeout}
}

// Probe runs ffprobe against path and parses format and stream info.
// The child process is killed when the timeout or ctx expires.
func (f *FFprobe) Probe(ctx context.Context, path string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("ffprobe timed out after %s: %w", f.timeout, ctx.Err())
		}
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	return parseOutput(stdout.Bytes())
}

// ffprobeOutput mirrors the parts of `ffprobe -print_format json` we consume.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

func parseOutput(data []byte) (*Result, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	r := &Result{}
	found := false
	for _, s := range out.Streams {
		if s.CodecType == "video" {
			r.Resolution = fmt.Sprintf("%dx%d", s.Width, s.Height)
			r.Codec = s.CodecName
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNoVideoStream
	}

	if out.Format.Duration != "" {
		seconds, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", out.Format.Duration, err)
		}
		r.DurationMinutes = int(math.Round(seconds / 60))
	}

	return r, nil
}
