package http

import (
	"bytes"
	"errors"
	"io"
)

// sniffJSON peeks at an uploaded file to pick between the JSON and CSV
// import paths. Leading whitespace is ignored (pretty-printed exports often
// start with a newline). The reader is rewound before returning.
func sniffJSON(f io.ReadSeeker) (bool, error) {
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		return false, errors.New("empty file")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	lead := bytes.TrimLeft(buf[:n], " \t\r\n")
	return len(lead) > 0 && (lead[0] == '[' || lead[0] == '{'), nil
}
