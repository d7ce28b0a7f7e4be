package indexer

import (
	"bytes"
	"io"
	"os"
)

// wholeReadThreshold is the size above which files are streamed in chunks
// instead of read fully, bounding peak memory regardless of file size.
const wholeReadThreshold = 1 << 20 // 1 MiB

// countLines returns the number of lines in the file at path. Files below
// the threshold are read whole and split; larger files are streamed and
// line-break bytes counted incrementally.
func countLines(path string, size int64) (int, error) {
	if size == 0 {
		return 0, nil
	}

	if size < wholeReadThreshold {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, err
		}
		return countLinesInBytes(data), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	lines := 0
	endedWithNewline := true
	buf := make([]byte, 64*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			lines += bytes.Count(buf[:n], []byte{'\n'})
			endedWithNewline = buf[n-1] == '\n'
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return lines, err
		}
	}
	if !endedWithNewline {
		lines++
	}
	return lines, nil
}

func countLinesInBytes(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	lines := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		lines++
	}
	return lines
}
